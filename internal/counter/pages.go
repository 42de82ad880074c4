package counter

import (
	"cmp"
	"errors"
	"net/http"

	"github.com/a-h/templ"
	"github.com/angelofallars/htmx-go"
	"github.com/go-chi/chi/v5"
	"github.com/lightmix/lightmix"
	"github.com/lightmix/lightmix/internal/app"
	"github.com/sirupsen/logrus"
)

type pages struct {
	home Home       `route:"GET /{$} High-Five counter"`
	up   upAction   `route:"POST /counter/{id}/up"`
	down downAction `route:"POST /counter/{id}/down"`
}

// Props mounts a fresh counter for every render of the page. HEAD requests
// discard the body, so they get a detached counter that is never registered.
func (Home) Props(r *http.Request, in *Instances) (*Counter, error) {
	if r.Method == http.MethodHead {
		return newCounter(""), nil
	}
	c := in.Mount()
	app.Logger(r.Context()).WithField("view", c.ID()).Debug("mounted counter view")
	return c, nil
}

func (Home) Page(c *Counter) templ.Component {
	return document("High-Five counter", homeBody(c))
}

// stepAction applies one click to the counter of the view named in the path
// and answers with the re-rendered heading.
type stepAction struct {
	instances *Instances
	apply     func(*Counter) (int64, error)
}

func (a *stepAction) serve(w http.ResponseWriter, r *http.Request) error {
	id := cmp.Or(chi.URLParam(r, "id"), r.PathValue("id"))
	c, ok := a.instances.Get(id)
	if !ok {
		return lightmix.NewHTTPError(http.StatusNotFound, ErrUnmounted.Error())
	}
	return a.step(w, r, c)
}

// step applies the event to c. c may be unmounted after it was looked up.
func (a *stepAction) step(w http.ResponseWriter, r *http.Request, c *Counter) error {
	v, err := a.apply(c)
	if errors.Is(err, ErrUnmounted) {
		return lightmix.NewHTTPError(http.StatusNotFound, err.Error())
	}
	if err != nil {
		return err
	}
	app.Logger(r.Context()).WithFields(logrus.Fields{"view": c.ID(), "count": v}).Debug("counter updated")
	return htmx.NewResponse().RenderTempl(r.Context(), w, frame(c))
}

type upAction struct{ stepAction }

func (a *upAction) Init(in *Instances) {
	a.stepAction = stepAction{instances: in, apply: (*Counter).Up}
}

func (a *upAction) ServeHTTP(w http.ResponseWriter, r *http.Request) error {
	return a.serve(w, r)
}

type downAction struct{ stepAction }

func (a *downAction) Init(in *Instances) {
	a.stepAction = stepAction{instances: in, apply: (*Counter).Down}
}

func (a *downAction) ServeHTTP(w http.ResponseWriter, r *http.Request) error {
	return a.serve(w, r)
}

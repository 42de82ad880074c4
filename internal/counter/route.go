package counter

// Route is the closed set of navigable routes of the counter app.
type Route interface {
	isRoute()
}

// Home is the only route, bound to "/".
type Home struct{}

func (Home) isRoute() {}

// Resolve maps a navigation path to its route. Only "/" matches; every other
// path reports false.
func Resolve(path string) (Route, bool) {
	switch path {
	case "/":
		return Home{}, true
	}
	return nil, false
}

// Path is the reverse of Resolve.
func Path(r Route) string {
	switch r.(type) {
	case Home:
		return "/"
	}
	return ""
}

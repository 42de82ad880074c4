// Package lightmix mounts trees of page structs onto a router and renders their
// templ components. Routes are declared with struct tags:
//
//	type pages struct {
//		home homePage `route:"GET /{$} Home"`
//	}
//
// A page is either a struct with a Page() component method (plus optional
// partial components picked for htmx requests), or a struct that implements
// http.Handler or ServeHTTP(http.ResponseWriter, *http.Request) error.
package lightmix

package site

import (
	"embed"
	"fmt"
	"io/fs"
	"net/http"
)

//go:embed assets/*.css
var assetsFS embed.FS

// Stylesheet is the path the site stylesheet is served and linked from.
const Stylesheet = "/assets/main.css"

// assetsPage serves the embedded files under /assets/.
type assetsPage struct {
	files http.Handler
}

func (a *assetsPage) Init() error {
	sub, err := fs.Sub(assetsFS, "assets")
	if err != nil {
		return fmt.Errorf("assets: %w", err)
	}
	if _, err := fs.Stat(sub, "main.css"); err != nil {
		return fmt.Errorf("stylesheet: %w", err)
	}
	a.files = http.StripPrefix("/assets/", http.FileServerFS(sub))
	return nil
}

func (a *assetsPage) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "public, max-age=3600")
	a.files.ServeHTTP(w, r)
}

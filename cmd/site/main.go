package main

import (
	"github.com/lightmix/lightmix/internal/app"
	"github.com/lightmix/lightmix/internal/site"
)

func main() {
	app.Main(app.NewCommand("site", "lightmix site shell", site.NewHandler))
}

package main

import (
	"github.com/lightmix/lightmix/internal/app"
	"github.com/lightmix/lightmix/internal/counter"
)

func main() {
	app.Main(app.NewCommand("counter", "High-Five counter app", counter.NewHandler))
}

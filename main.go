package main

import (
	"github.com/xlttj/muxwarden/pkg/cmd"
)

var version = "0.0.0-src"

func main() {
	c := cmd.Options{}
	cmd.NewOpts(&c, version).Parse().RunFatal()
}

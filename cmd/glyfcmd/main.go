package main

import (
	"io"
	"log"
	"os"

	"github.com/tdewolff/argp"
)

var (
	Error   *log.Logger
	Warning *log.Logger
)

func main() {
	Error = log.New(os.Stderr, "ERROR: ", 0)
	Warning = log.New(os.Stderr, "WARNING: ", 0)

	cmd := argp.New("Command line toolkit for TrueType glyph outlines")
	cmd.AddCmd(&Info{}, "info", "Get glyph table info")
	cmd.AddCmd(&Glyph{}, "glyph", "Print a decoded glyph")
	cmd.AddCmd(&Check{}, "check", "Decode all glyphs and report malformed ones")
	cmd.AddCmd(&Deps{}, "deps", "List the glyphs used by a compound glyph")
	cmd.AddCmd(&Draw{}, "draw", "Draw a glyph outline to SVG")
	cmd.Parse()
}

func setQuiet(quiet bool) {
	if quiet {
		Warning.SetOutput(io.Discard)
	}
}

package commands

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	green = color.New(color.FgGreen)
	red   = color.New(color.FgRed)
	bold  = color.New(color.Bold)
)

func success(w io.Writer, format string, args ...any) {
	green.Fprintf(w, format+"\n", args...)
}

func failure(w io.Writer, format string, args ...any) {
	red.Fprintf(w, format+"\n", args...)
}

func heading(w io.Writer, text string) {
	bold.Fprintln(w, text)
}

func plain(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, format+"\n", args...)
}

// Package display provides the startup banner and human-readable
// formatting helpers for summary output.
package display

import (
	"fmt"
	"os"

	"github.com/tulku/picture-sorter/internal/term"
)

// PrintBanner prints the ASCII art banner; uses Magenta if colors are
// enabled.
func PrintBanner() {
	if term.Enabled() {
		fmt.Fprint(os.Stdout, term.Magenta)
	}
	fmt.Fprint(os.Stdout, ` ____  _      ____             _
|  _ \(_) ___/ ___|  ___  _ __| |_ ___ _ __
| |_) | |/ __\___ \ / _ \| '__| __/ _ \ '__|
|  __/| | (__ ___) | (_) | |  | ||  __/ |
|_|   |_|\___|____/ \___/|_|  |_| \__\___|_|
`)
	if term.Enabled() {
		fmt.Fprintln(os.Stdout, term.NC)
	}
}

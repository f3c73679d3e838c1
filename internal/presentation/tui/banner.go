package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
)

// PrintBanner writes the typo3docs banner and version to w.
func PrintBanner(w io.Writer, version string) {
	p := termenv.ColorProfile()
	// Orange shades of the TYPO3 brand.
	lines := []struct {
		text, color string
	}{
		{" _                    _____     _                ", "#ff8700"},
		{"| |_ _   _ _ __   ___|___ /  __| | ___   ___ ___ ", "#ff8f1f"},
		{"| __| | | | '_ \\ / _ \\ |_ \\ / _` |/ _ \\ / __/ __|", "#f49700"},
		{"| |_| |_| | |_) | (_) |__) | (_| | (_) | (__\\__ \\", "#f07c00"},
		{" \\__|\\__, | .__/ \\___/____/ \\__,_|\\___/ \\___|___/", "#e36b00"},
		{"     |___/|_|                                     ", "#d45a00"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	if v := strings.TrimSpace(version); v != "" {
		fmt.Fprintln(w, termenv.String("  v"+v).Faint())
	}
	fmt.Fprintln(w)
}

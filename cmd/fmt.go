package cmd

import (
	"bufio"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/auragold"
)

// printMarkdown prints a markdown document, rendered for the terminal unless -plain is set.
func printMarkdown(doc string, theme auragold.Theme) {
	if *plain {
		fmt.Fprint(stdout, doc)
		return
	}
	out, err := renderMarkdown(doc, theme)
	if err != nil {
		slog.Debug("could not render markdown", "error", err)
		fmt.Fprint(stdout, doc)
		return
	}
	fmt.Fprint(stdout, out)
}

// renderMarkdown renders doc with the glamour style matching theme.
func renderMarkdown(doc string, theme auragold.Theme) (string, error) {
	style := glamour.WithAutoStyle()
	switch theme {
	case auragold.ThemeDark:
		style = glamour.WithStandardStyle("dark")
	case auragold.ThemeLight:
		style = glamour.WithStandardStyle("light")
	}
	r, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(120))
	if err != nil {
		return "", err
	}
	return r.Render(doc)
}

// confirm asks a yes/no question on stdin. It returns true without asking if yes is set.
func confirm(yes bool, format string, args ...any) bool {
	if yes {
		return true
	}
	fmt.Fprintf(stdout, format+" [y/N] ", args...)
	line, _ := bufio.NewReader(stdin).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	fmt.Fprintln(stdout, "Cancelled.")
	return false
}

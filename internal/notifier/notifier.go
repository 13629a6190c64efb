package notifier

import (
	"fmt"
	"io"
	"strings"

	"github.com/MrSnakeDoc/mcversion/internal/models"
	"github.com/MrSnakeDoc/mcversion/internal/printer"
	"github.com/MrSnakeDoc/mcversion/internal/utils"
)

const (
	borderColor = "\033[38;5;39m"
	resetColor  = "\033[0m"
	padding     = 2
)

// Terminal draws each announcement as a box on Out.
type Terminal struct {
	Out   io.Writer
	Color bool
}

func (t Terminal) Announce(a models.Announcement) {
	p := printer.NewPlainPrinter()
	if t.Color {
		p = printer.NewColorPrinter()
	}
	DisplayNewVersion(t.Out, p, a, t.Color)
}

// DisplayNewVersion writes a boxed "new version" notification.
func DisplayNewVersion(w io.Writer, p *printer.ColorPrinter, a models.Announcement, color bool) {
	title := p.Success("New Minecraft version!")
	detected := p.Info("Version:")
	version := p.Success("%s", a.ID)

	lines := []string{title}
	if a.Type != "" {
		lines = append(lines, fmt.Sprintf("%s %s (%s)", detected, version, p.Warning("%s", a.Type)))
	} else {
		lines = append(lines, fmt.Sprintf("%s %s", detected, version))
	}
	if a.ArticleURL != "" {
		lines = append(lines, fmt.Sprintf("%s %s", p.Info("Read more:"), a.ArticleURL))
	}

	border, reset := borderColor, resetColor
	if !color {
		border, reset = "", ""
	}

	maxWidth := utils.GetMaxWidth(lines) + padding*2
	side := border + "│" + reset

	_, _ = fmt.Fprintln(w, border+"╭"+strings.Repeat("─", maxWidth)+"╮"+reset)
	for _, line := range lines {
		width := utils.GetMaxWidth([]string{line})
		left := (maxWidth - width) / 2
		right := maxWidth - width - left
		_, _ = fmt.Fprintf(w, "%s%s%s%s%s\n", side, strings.Repeat(" ", left), line, strings.Repeat(" ", right), side)
	}
	_, _ = fmt.Fprintln(w, border+"╰"+strings.Repeat("─", maxWidth)+"╯"+reset)
}

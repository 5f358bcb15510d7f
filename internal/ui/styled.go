package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"fstree/internal/domain"
)

var kindColors = map[domain.Kind]lipgloss.Color{
	domain.KindFile:       lipgloss.Color("250"),
	domain.KindImage:      lipgloss.Color("170"),
	domain.KindDocument:   lipgloss.Color("75"),
	domain.KindExecutable: lipgloss.Color("214"),
	domain.KindDirectory:  lipgloss.Color("42"),
}

// RenderStyled writes the same lines as node.Display with the kind labels
// colored. Colors are dropped when w is not a terminal.
func RenderStyled(w io.Writer, node domain.Node, theme string) error {
	renderer := lipgloss.NewRenderer(w)
	styles := make(map[domain.Kind]lipgloss.Style, len(kindColors))
	for kind, color := range kindColors {
		style := renderer.NewStyle().Foreground(color)
		if kind == domain.KindDirectory || strings.ToLower(theme) == "light" {
			style = style.Bold(true)
		}
		styles[kind] = style
	}
	return domain.Walk(node, func(current domain.Node, depth int) error {
		indent := strings.Repeat(domain.IndentUnit, depth)
		label := styles[current.Kind()].Render(current.Kind().Label())
		_, err := fmt.Fprintf(w, "%s%s: %s (%dKB)\n", indent, label, current.Name(), current.Size())
		return err
	})
}

package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	newStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	delStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	idStyle   = lipgloss.NewStyle().Faint(true)
	nameStyle = lipgloss.NewStyle().Bold(true)
	rootStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("4"))
	enumStyle = lipgloss.NewStyle().Faint(true).PaddingRight(1)
)

const shortIDLen = 8

// ShortID is the id prefix printed next to every node; commands accept it
// back in place of the full id.
func ShortID(id string) string {
	if len(id) > shortIDLen {
		return id[:shortIDLen]
	}
	return id
}

func tag(id string) string {
	return idStyle.Render("[" + ShortID(id) + "]")
}

func NewLine(w io.Writer, kind, name, id string) {
	fmt.Fprintln(w, newStyle.Render("new")+"  "+kind+" "+nameStyle.Render(name)+" "+tag(id))
}

func SetLine(w io.Writer, kind, name, id string) {
	fmt.Fprintln(w, newStyle.Render("set")+"  "+kind+" "+nameStyle.Render(name)+" "+tag(id))
}

func DelLine(w io.Writer, kind, id string) {
	fmt.Fprintln(w, delStyle.Render("del")+"  "+kind+" "+tag(id))
}

func WarnLine(w io.Writer, msg string) {
	fmt.Fprintln(w, warnStyle.Render("warn")+" "+msg)
}

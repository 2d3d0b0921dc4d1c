package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jask/arbor/internal/tree"
)

const chromeRows = 3 // header, status, footer

func (a *App) View() string {
	canvasHeight := a.height - chromeRows
	if canvasHeight < 1 {
		canvasHeight = 1
	}

	c := newCanvas(a.width, canvasHeight)
	c.drawScene(a.positioned, a.links, a.vp, a.cursorID())
	body := c.render()

	if a.pickerOpen {
		body = a.overlayPicker(body, canvasHeight)
	}

	return strings.Join([]string{
		a.renderHeader(),
		body,
		a.renderStatus(),
		a.renderFooter(),
	}, "\n")
}

func (a *App) cursorID() string {
	if n := a.cursorNode(); n != nil {
		return n.ID
	}
	return ""
}

func (a *App) renderHeader() string {
	left := headerStyle.Render("arbor")
	hidden := a.hiddenCount()
	info := fmt.Sprintf(" %s · %s · %d nodes", a.source, a.cfg.Tree.Orientation, len(a.positioned))
	if hidden > 0 {
		info += fmt.Sprintf(" (%d hidden)", hidden)
	}
	info += fmt.Sprintf(" · scale %.2f", a.vp.Scale)
	line := left + headerInfoStyle.Render(info)
	return padLine(line, a.width, headerInfoStyle)
}

func (a *App) hiddenCount() int {
	return tree.Count(a.nodes) - len(a.positioned)
}

func (a *App) renderStatus() string {
	style := statusBarStyle
	msg := a.status
	if strings.HasPrefix(msg, "error:") {
		style = statusErrBarStyle
	}
	if msg == "" {
		if n := a.cursorNode(); n != nil {
			msg = describeNode(n.Name, n.Depth, n.Attributes)
		}
	}
	return padLine(style.Render(" "+msg), a.width, style)
}

func describeNode(name string, depth int, attrs map[string]string) string {
	parts := []string{fmt.Sprintf("%s · depth %d", name, depth)}
	for k, v := range attrs {
		parts = append(parts, k+"="+v)
		if len(parts) >= 4 {
			break
		}
	}
	return strings.Join(parts, " · ")
}

func (a *App) renderFooter() string {
	var sb strings.Builder
	for i, entry := range a.keys.helpEntries() {
		if i > 0 {
			sb.WriteString(helpDescStyle.Render(" · "))
		}
		sb.WriteString(keyStyle.Render(entry[0]))
		sb.WriteString(helpDescStyle.Render(" " + entry[1]))
	}
	return padLine(sb.String(), a.width, helpDescStyle)
}

// overlayPicker drops the jump picker over the middle of the canvas.
func (a *App) overlayPicker(body string, canvasHeight int) string {
	modal := pickerBoxStyle.Render(a.picker.View() + "\n" + helpDescStyle.Render("query: "+a.query))
	return lipgloss.Place(a.width, canvasHeight, lipgloss.Center, lipgloss.Center, modal)
}

// padLine pads a styled line to the full terminal width so bar backgrounds
// reach the right edge.
func padLine(line string, width int, style lipgloss.Style) string {
	pad := width - lipgloss.Width(line)
	if pad <= 0 {
		return line
	}
	return line + style.Render(strings.Repeat(" ", pad))
}

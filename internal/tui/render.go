package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/agenticgokit/tales/internal/export"
	"github.com/agenticgokit/tales/internal/trajectory"
)

// View renders the model
func (m Model) View() string {
	if m.state.Err != nil {
		return m.renderErrorModal()
	}

	var sections []string

	sections = append(sections, m.renderHeader())

	if !m.state.Loaded() {
		sections = append(sections, m.renderNoFile())
	} else {
		sections = append(sections, m.renderFilters())
		if m.state.Empty() {
			sections = append(sections, WarningStyle.Render("No data available for the selected filters. Press r to reset them."))
		} else {
			sections = append(sections,
				m.renderMeta(),
				m.viewport.View(),
				m.renderNavigation(),
			)
		}
	}

	if m.input == inputOpen {
		sections = append(sections, BoxStyle.Render(m.openInput.View()))
	}
	sections = append(sections, HelpStyle.Render(m.help.View(m.keys)))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader() string {
	title := TitleStyle.Render("Trajectory Viewer")
	if m.path == "" {
		return title
	}
	info := fmt.Sprintf("%s  %d records", filepath.Base(m.path), m.state.Dataset.Len())
	return lipgloss.JoinHorizontal(lipgloss.Center, title, " ", MutedStyle.Render(info))
}

func (m Model) renderNoFile() string {
	return BoxStyle.Render(
		"No file loaded.\n\n" +
			MutedStyle.Render("Press o to open a JSON file containing an array of step records."),
	)
}

func (m Model) renderFilters() string {
	parts := make([]string, 0, len(trajectory.Dimensions))
	for _, d := range trajectory.Dimensions {
		value := m.state.Selection.Get(d)
		label := fmt.Sprintf(" %s: %s ", d.Label(), value)
		if d == m.focus {
			parts = append(parts, SelectedStyle.Render(label))
			continue
		}
		parts = append(parts, LabelStyle.Render(d.Label()+":")+" "+ValueStyle.Render(value))
	}
	line := strings.Join(parts, "  ")
	count := MutedStyle.Render(fmt.Sprintf("Current Trajectory: %d steps", len(m.state.Trajectory)))
	return line + "\n" + count
}

func (m Model) renderMeta() string {
	rec, ok := m.state.Current()
	if !ok {
		return ""
	}
	meta := RenderMeta(rec)
	if g, pos, ok := m.state.CurrentGroup(); ok && len(m.state.Groups) > 1 {
		meta += MutedStyle.Render(fmt.Sprintf("  (trajectory step %d of %d)", pos+1, g.Steps))
	}
	return meta
}

func (m Model) renderNavigation() string {
	nav := m.state.Nav
	counter := fmt.Sprintf("Step %d / %d", nav.Index+1, nav.Length)

	status := MutedStyle.Render("⏸ paused")
	if nav.Playing {
		status = SuccessStyle.Render("▶ playing")
	}

	line := lipgloss.JoinHorizontal(lipgloss.Center,
		ValueStyle.Render(counter), "  ",
		m.progress.ViewAs(nav.Progress()), "  ",
		status,
	)
	if m.input == inputStep {
		line += "\n" + m.stepInput.View()
	}
	return line
}

func (m Model) renderErrorModal() string {
	body := ErrorStyle.Render("Error loading file") + "\n\n" +
		m.state.Err.Error() + "\n\n" +
		MutedStyle.Render("Press any key to continue")
	modal := ModalStyle.Width(min(max(m.width-4, 20), 80)).Render(body)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal)
}

// RenderMeta renders the key and step of a record on one line.
func RenderMeta(r trajectory.Record) string {
	step := export.PlaceholderNA
	if r.HasStep && r.StepLabel != "" {
		step = r.StepLabel
	}
	fields := []struct{ label, value string }{
		{"Model", r.Key.Model},
		{"Env", r.Key.Env},
		{"Level", r.Key.Level},
		{"Run", r.Key.RunID},
		{"Step", step},
	}
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		v := f.value
		if v == "" {
			v = export.PlaceholderNA
		}
		parts = append(parts, LabelStyle.Render(f.label+":")+" "+ValueStyle.Render(v))
	}
	return strings.Join(parts, MutedStyle.Render(" | "))
}

// RenderPanels renders the observation before, action and observation after
// of a record, wrapped to width.
func RenderPanels(r trajectory.Record, width int) string {
	if width < 20 {
		width = 20
	}
	body := lipgloss.NewStyle().Width(width - 2).PaddingLeft(1)

	section := func(header lipgloss.Style, title, text, placeholder string) string {
		content := ValueStyle.Render(text)
		if strings.TrimSpace(text) == "" {
			content = MutedStyle.Italic(true).Render(placeholder)
		}
		return header.Render(title) + "\n" + body.Render(content)
	}

	return strings.Join([]string{
		section(SectionHeaderStyle, "Observation Before", r.ObservationBefore, export.PlaceholderObservation),
		section(ActionHeaderStyle, "Action", r.Action, export.PlaceholderAction),
		section(SectionHeaderStyle, "Observation After", r.ObservationAfter, export.PlaceholderObservation),
	}, "\n\n")
}

// RenderStep renders a full step for non-interactive output.
func RenderStep(r trajectory.Record, position, total, width int) string {
	header := TitleStyle.Render(fmt.Sprintf("Step %d / %d", position, total))
	return header + "\n" + RenderMeta(r) + "\n\n" + RenderPanels(r, width)
}

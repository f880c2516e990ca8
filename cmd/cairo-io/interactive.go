package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/cairo-io/schema"
	"github.com/wippyai/cairo-io/transcoder"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	fieldStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// maxShownFelts caps the felt list so long arrays do not scroll the input away.
const maxShownFelts = 24

type interactiveModel struct {
	err      error
	schema   *schema.Schema
	encoder  *transcoder.Encoder
	filename string
	result   []string
	input    textinput.Model
}

func newInteractiveModel(filename string, s *schema.Schema) *interactiveModel {
	ti := textinput.New()
	ti.Placeholder = `{"field": 1}`
	ti.Prompt = "args: "
	ti.Width = 60
	ti.Focus()
	return &interactiveModel{
		schema:   s,
		encoder:  transcoder.NewEncoder(),
		filename: filename,
		input:    ti,
	}
}

func (m *interactiveModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "ctrl+u":
			m.input.SetValue("")
			m.encode()
			return m, nil
		}
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.encode()
	}
	return m, cmd
}

// encode re-encodes the current input. Blank input clears the result.
func (m *interactiveModel) encode() {
	m.result, m.err = nil, nil
	doc := strings.TrimSpace(m.input.Value())
	if doc == "" {
		return
	}
	args, err := m.encoder.EncodeJSON([]byte(doc), m.schema)
	if err != nil {
		m.err = err
		return
	}
	for _, f := range args.Flatten() {
		m.result = append(m.result, f.Hex())
	}
	if len(args) == 0 {
		m.result = []string{"(no arguments)"}
	}
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Cairo Args Encoder"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	b.WriteString("\n\n")

	b.WriteString(m.formatRecord(m.schema.Input))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	case len(m.result) > 0:
		shown := m.result
		if len(shown) > maxShownFelts {
			shown = shown[:maxShownFelts]
		}
		b.WriteString(resultStyle.Render(strings.Join(shown, " ")))
		if len(m.result) > maxShownFelts {
			b.WriteString(helpStyle.Render(fmt.Sprintf(" … %d more", len(m.result)-maxShownFelts)))
		}
	}
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("type JSON to encode • ctrl+u clear • esc quit"))

	return b.String()
}

func (m *interactiveModel) formatRecord(name string) string {
	rec, err := m.schema.Record(name)
	if err != nil {
		return errorStyle.Render(err.Error())
	}
	fields := make([]string, len(rec.Fields))
	for i, f := range rec.Fields {
		fields[i] = fieldStyle.Render(f.Name) + ": " + typeStyle.Render(f.Type.String())
	}
	return fieldStyle.Render(name) + " { " + strings.Join(fields, ", ") + " }"
}

func runInteractive(filename string, s *schema.Schema) error {
	p := tea.NewProgram(newInteractiveModel(filename, s), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

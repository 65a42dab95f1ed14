package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// form is a vertical stack of labeled text inputs with tab-cycled
// focus. Every modal form on every page is one of these; only the
// field list and the submit handler differ.
type form struct {
	title   string
	labels  []string
	inputs  []textinput.Model
	focus   int
	submit  func(values []string) tea.Cmd
	// busy disables resubmission while the submit command is in
	// flight. This is the only double-submit safeguard the transfer
	// operations have, so it must stay on until the result arrives.
	busy bool
}

// formField describes one input in a form.
type formField struct {
	label       string
	placeholder string
	initial     string
	secret      bool
}

func newForm(title string, fields []formField, submit func(values []string) tea.Cmd) *form {
	f := &form{title: title, submit: submit}
	for i, field := range fields {
		in := textinput.New()
		in.Placeholder = field.placeholder
		in.SetValue(field.initial)
		in.CharLimit = 128
		in.Width = 32
		if field.secret {
			in.EchoMode = textinput.EchoPassword
		}
		if i == 0 {
			in.Focus()
		}
		f.labels = append(f.labels, field.label)
		f.inputs = append(f.inputs, in)
	}
	return f
}

// Update handles one message. It returns false when the form was
// dismissed.
func (f *form) Update(msg tea.Msg) (tea.Cmd, bool) {
	keyMsg, isKey := msg.(tea.KeyMsg)
	if !isKey {
		return f.updateInputs(msg), true
	}

	switch keyMsg.Type {
	case tea.KeyEsc:
		if f.busy {
			return nil, true
		}
		return nil, false
	case tea.KeyTab, tea.KeyDown:
		f.setFocus(f.focus + 1)
		return nil, true
	case tea.KeyShiftTab, tea.KeyUp:
		f.setFocus(f.focus - 1)
		return nil, true
	case tea.KeyEnter:
		if f.focus < len(f.inputs)-1 {
			f.setFocus(f.focus + 1)
			return nil, true
		}
		if f.busy {
			return nil, true
		}
		f.busy = true
		values := make([]string, len(f.inputs))
		for i, in := range f.inputs {
			values[i] = strings.TrimSpace(in.Value())
		}
		return f.submit(values), true
	}
	return f.updateInputs(msg), true
}

func (f *form) setFocus(focus int) {
	if len(f.inputs) == 0 {
		return
	}
	f.inputs[f.focus].Blur()
	f.focus = (focus + len(f.inputs)) % len(f.inputs)
	f.inputs[f.focus].Focus()
}

func (f *form) updateInputs(msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, len(f.inputs))
	for i := range f.inputs {
		f.inputs[i], cmds[i] = f.inputs[i].Update(msg)
	}
	return tea.Batch(cmds...)
}

func (f *form) View() string {
	var b strings.Builder
	b.WriteString(styleTitle.Render(f.title))
	b.WriteString("\n\n")
	for i, in := range f.inputs {
		label := f.labels[i]
		if i == f.focus {
			b.WriteString(styleSelected.Render("> " + label))
		} else {
			b.WriteString("  " + label)
		}
		b.WriteString("\n  ")
		b.WriteString(in.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	if f.busy {
		b.WriteString(stylePending.Render("submitting..."))
	} else {
		b.WriteString(styleHelp.Render("enter: next/submit · esc: cancel"))
	}
	return styleBox.Render(b.String())
}

package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/xvierd/focusday/internal/domain"
)

// settingsForm edits every domain.SettingsFields entry, one input each.
type settingsForm struct {
	inputs []textinput.Model
	focus  int
}

func newSettingsForm(s domain.TimerSettings) settingsForm {
	inputs := make([]textinput.Model, len(domain.SettingsFields))
	for i, field := range domain.SettingsFields {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 5
		ti.Width = 6
		if field == domain.FieldWakeUpTime || field == domain.FieldBedTime {
			ti.Placeholder = "HH:MM"
		} else {
			ti.Placeholder = "min"
		}
		ti.SetValue(s.Value(field))
		inputs[i] = ti
	}
	inputs[0].Focus()
	return settingsForm{inputs: inputs}
}

func (f *settingsForm) move(delta int) {
	if len(f.inputs) == 0 {
		return
	}
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + delta + len(f.inputs)) % len(f.inputs)
	f.inputs[f.focus].Focus()
}

func (f *settingsForm) next() { f.move(1) }

func (f *settingsForm) prev() { f.move(-1) }

func (f settingsForm) focusCmd() tea.Cmd {
	return textinput.Blink
}

func (f settingsForm) update(msg tea.Msg) (settingsForm, tea.Cmd) {
	if len(f.inputs) == 0 {
		return f, nil
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

// apply returns base with every field edit that parses applied. The others
// keep base's value.
func (f settingsForm) apply(base domain.TimerSettings) domain.TimerSettings {
	for i, field := range domain.SettingsFields {
		if next, ok := domain.ApplySettingsEdit(base, field, f.inputs[i].Value()); ok {
			base = next
		}
	}
	return base
}

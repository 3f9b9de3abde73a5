package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Modal is the interface for modal dialogs.
// The Update method returns the updated modal, a command, and a bool indicating if the modal should close.
type Modal interface {
	Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool)
	View(theme Theme, width, height int) string
}

// confirmModal asks a yes/no question and runs onYes when confirmed.
type confirmModal struct {
	title  string
	prompt string
	onYes  tea.Cmd
}

func newConfirm(title, prompt string, onYes tea.Cmd) confirmModal {
	return confirmModal{title: title, prompt: prompt, onYes: onYes}
}

func (c confirmModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil, false
	}
	switch {
	case key.Matches(keyMsg, keys.Yes):
		return c, c.onYes, true
	case key.Matches(keyMsg, keys.No):
		return c, nil, true
	}
	return c, nil, false
}

func (c confirmModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render(c.title))
	b.WriteString("\n\n")
	for _, line := range wrap(c.prompt, 40) {
		b.WriteString(styles.Text.Render(line))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(styles.AccentText.Render("y") + styles.MutedText.Render(" confirm   ") +
		styles.AccentText.Render("n") + styles.MutedText.Render(" cancel"))
	return theme.placeModal(theme.modalFrame(46).Render(b.String()), width, height)
}

// inputModal collects one line of text. validate returns an error message
// for unacceptable input; submit builds the command to run with the value.
type inputModal struct {
	title    string
	input    textinput.Model
	validate func(string) string
	submit   func(string) tea.Cmd
	err      string
}

func newInputModal(title, placeholder, value string, submit func(string) tea.Cmd) inputModal {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 200
	ti.Width = 36
	ti.SetValue(value)
	ti.Focus()
	return inputModal{title: title, input: ti, submit: submit}
}

func (im inputModal) withValidation(fn func(string) string) inputModal {
	im.validate = fn
	return im
}

func (im inputModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, keys.Escape):
			return im, nil, true
		case key.Matches(keyMsg, keys.Submit):
			value := im.input.Value()
			if im.validate != nil {
				if problem := im.validate(value); problem != "" {
					im.err = problem
					return im, nil, false
				}
			}
			return im, im.submit(value), true
		}
	}
	var cmd tea.Cmd
	im.input, cmd = im.input.Update(msg)
	im.err = ""
	return im, cmd, false
}

func (im inputModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render(im.title))
	b.WriteString("\n\n")
	b.WriteString(im.input.View())
	b.WriteString("\n")
	if im.err != "" {
		b.WriteString(styles.DangerText.Render(im.err))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(styles.AccentText.Render("enter") + styles.MutedText.Render(" apply   ") +
		styles.AccentText.Render("esc") + styles.MutedText.Render(" cancel"))
	return theme.placeModal(theme.modalFrame(46).Render(b.String()), width, height)
}

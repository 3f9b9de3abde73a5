package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/reel/internal/form"
)

// field is one labeled text input. name is the form.Errors key.
type field struct {
	name     string
	label    string
	input    textinput.Model
	readOnly bool
}

// fieldSet is a vertical stack of inputs with a single focus.
type fieldSet struct {
	fields  []field
	focus   int
	blurred bool
}

func newField(name, label, placeholder string) field {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 256
	ti.Width = 40
	ti.Prompt = ""
	return field{name: name, label: label, input: ti}
}

func passwordField(name, label string) field {
	f := newField(name, label, "")
	f.input.EchoMode = textinput.EchoPassword
	f.input.EchoCharacter = '•'
	return f
}

func newFieldSet(fields ...field) fieldSet {
	fs := fieldSet{fields: fields}
	fs.focusAt(fs.firstEditable())
	return fs
}

func (fs *fieldSet) firstEditable() int {
	for i, f := range fs.fields {
		if !f.readOnly {
			return i
		}
	}
	return 0
}

func (fs *fieldSet) focusAt(i int) tea.Cmd {
	if len(fs.fields) == 0 {
		return nil
	}
	for j := range fs.fields {
		fs.fields[j].input.Blur()
	}
	fs.focus = i
	fs.blurred = false
	return fs.fields[i].input.Focus()
}

func (fs *fieldSet) move(delta int) tea.Cmd {
	n := len(fs.fields)
	if n == 0 {
		return nil
	}
	i := fs.focus
	for range n {
		i = ((i+delta)%n + n) % n
		if !fs.fields[i].readOnly {
			break
		}
	}
	return fs.focusAt(i)
}

// blur drops focus so single-key shortcuts work again.
func (fs *fieldSet) blur() {
	for j := range fs.fields {
		fs.fields[j].input.Blur()
	}
	fs.blurred = true
}

func (fs fieldSet) active() bool {
	return !fs.blurred && len(fs.fields) > 0
}

func (fs fieldSet) onLast() bool {
	for i := len(fs.fields) - 1; i >= 0; i-- {
		if !fs.fields[i].readOnly {
			return fs.focus == i
		}
	}
	return true
}

func (fs fieldSet) value(name string) string {
	for _, f := range fs.fields {
		if f.name == name {
			return f.input.Value()
		}
	}
	return ""
}

func (fs *fieldSet) set(name, value string) {
	for i := range fs.fields {
		if fs.fields[i].name == name {
			fs.fields[i].input.SetValue(value)
			return
		}
	}
}

func (fs fieldSet) focusedName() string {
	if !fs.active() {
		return ""
	}
	return fs.fields[fs.focus].name
}

// update routes navigation keys and forwards everything else to the focused
// input. The returned name is the field whose value changed.
func (fs *fieldSet) update(msg tea.Msg, keys keyMap) (tea.Cmd, string) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if !fs.active() {
			return nil, ""
		}
		switch {
		case key.Matches(keyMsg, keys.NextField):
			return fs.move(1), ""
		case key.Matches(keyMsg, keys.PrevField):
			return fs.move(-1), ""
		}
	}
	if !fs.active() {
		return nil, ""
	}
	f := &fs.fields[fs.focus]
	if f.readOnly {
		return nil, ""
	}
	before := f.input.Value()
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	if f.input.Value() != before {
		return cmd, f.name
	}
	return cmd, ""
}

// view renders labels, inputs and per-field errors.
func (fs fieldSet) view(styles Styles, errs form.Errors, width int) string {
	labelWidth := 0
	for _, f := range fs.fields {
		labelWidth = max(labelWidth, lipgloss.Width(f.label))
	}
	labelWidth += 2

	var b strings.Builder
	for i, f := range fs.fields {
		label := styles.MutedText.Width(labelWidth).Render(f.label)
		if i == fs.focus && fs.active() {
			label = styles.AccentText.Bold(true).Width(labelWidth).Render(f.label)
		}
		value := f.input.View()
		if f.readOnly {
			value = styles.FaintText.Render(f.input.Value())
		}
		b.WriteString(label + value)
		b.WriteString("\n")
		if msg := errs.Get(f.name); msg != "" {
			b.WriteString(strings.Repeat(" ", labelWidth))
			b.WriteString(styles.DangerText.Render(truncate(msg, max(width-labelWidth, 10))))
			b.WriteString("\n")
		}
	}
	return b.String()
}

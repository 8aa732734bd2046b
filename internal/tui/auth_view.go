package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/diplomas-2025/agro-market/internal/controller"
)

const (
	fieldUsername = iota
	fieldEmail
	fieldPassword
)

type authForm struct {
	inputs []textinput.Model
	active int
	signUp bool
}

func newAuthForm(mode cursor.Mode) authForm {
	inputs := []textinput.Model{
		fieldUsername: newInput(mode, "Username: ", "username"),
		fieldEmail:    newInput(mode, "Email:    ", "email"),
		fieldPassword: newInput(mode, "Password: ", "password"),
	}
	for i := range inputs {
		inputs[i].CharLimit = 128
	}
	inputs[fieldPassword].EchoMode = textinput.EchoPassword
	inputs[fieldPassword].EchoCharacter = '•'
	return authForm{inputs: inputs, active: fieldEmail}
}

// fields lists the inputs visible in the current mode.
func (f *authForm) fields() []int {
	if f.signUp {
		return []int{fieldUsername, fieldEmail, fieldPassword}
	}
	return []int{fieldEmail, fieldPassword}
}

func (f *authForm) focus() tea.Cmd {
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
	return f.inputs[f.active].Focus()
}

func (f *authForm) move(delta int) tea.Cmd {
	fields := f.fields()
	pos := 0
	for i, id := range fields {
		if id == f.active {
			pos = i
		}
	}
	pos = (pos + delta + len(fields)) % len(fields)
	f.active = fields[pos]
	return f.focus()
}

func (f *authForm) toggle() tea.Cmd {
	f.signUp = !f.signUp
	if f.signUp {
		f.active = fieldUsername
	} else {
		f.active = fieldEmail
	}
	return f.focus()
}

func (f *authForm) reset() {
	for i := range f.inputs {
		f.inputs[i].SetValue("")
	}
	f.signUp = false
	f.active = fieldEmail
}

func (f *authForm) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.active], cmd = f.inputs[f.active].Update(msg)
	return cmd
}

func (f *authForm) value(field int) string {
	return strings.TrimSpace(f.inputs[field].Value())
}

func (a *App) updateAuth(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, a.keys.ToggleAuthMode):
		a.auth.ToggleMode()
		a.status = ""
		return a.authForm.toggle()
	case msg.String() == "tab" || msg.String() == "down":
		return a.authForm.move(1)
	case msg.String() == "shift+tab" || msg.String() == "up":
		return a.authForm.move(-1)
	case key.Matches(msg, a.keys.Submit):
		return a.submitAuth()
	}
	return a.authForm.update(msg)
}

func (a *App) submitAuth() tea.Cmd {
	if a.busy {
		return nil
	}
	f := &a.authForm
	email, password := f.value(fieldEmail), f.inputs[fieldPassword].Value()
	username := f.value(fieldUsername)
	signUp := f.signUp

	a.busy = true
	a.status = ""
	ctx := a.ctx
	auth := a.auth
	return tea.Batch(a.spinner.Tick, func() tea.Msg {
		var err error
		if signUp {
			err = auth.SignUp(ctx, username, email, password)
		} else {
			err = auth.SignIn(ctx, email, password)
		}
		return authDoneMsg{err: err, text: auth.Message()}
	})
}

func (a *App) viewAuth() string {
	var b strings.Builder
	f := &a.authForm
	title := "Sign in"
	if f.signUp {
		title = "Create account"
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	for _, id := range f.fields() {
		b.WriteString(f.inputs[id].View())
		b.WriteString("\n")
	}
	if a.auth.State() == controller.StateSignInPending || a.auth.State() == controller.StateSignUpPending {
		b.WriteString("\n" + a.spinner.View() + " contacting server...")
	}
	return boxStyle.Render(b.String())
}

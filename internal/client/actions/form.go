package actions

import (
	"context"

	"github.com/dmitrijs2005/jafa/internal/common"
)

type Tab int

const (
	TabLogin Tab = iota
	TabRegister
)

func (t Tab) String() string {
	if t == TabRegister {
		return "register"
	}
	return "login"
}

type Field int

const (
	FieldUsername Field = iota
	FieldPassword
)

// LoginForm is the two-tab form of the login page. Each tab keeps its own
// fields; switching tabs only moves focus back to the username field.
type LoginForm struct {
	active Tab
	focus  Field
	tabs   [2]Credentials
}

func NewLoginForm() *LoginForm {
	return &LoginForm{}
}

func (f *LoginForm) Active() Tab  { return f.active }
func (f *LoginForm) Focus() Field { return f.focus }

func (f *LoginForm) SwitchTab(t Tab) {
	f.active = t
	f.focus = FieldUsername
}

// FocusNext moves focus to the other field.
func (f *LoginForm) FocusNext() {
	if f.focus == FieldUsername {
		f.focus = FieldPassword
	} else {
		f.focus = FieldUsername
	}
}

func (f *LoginForm) SetUsername(v string) {
	f.tabs[f.active].Username = v
}

func (f *LoginForm) SetPassword(v []byte) {
	common.WipeByteArray(f.tabs[f.active].Password)
	f.tabs[f.active].Password = v
}

// Values returns the fields of tab t.
func (f *LoginForm) Values(t Tab) Credentials {
	return f.tabs[t]
}

// Submit sends the active tab through Login or Register. The password of
// that tab is wiped afterwards whatever the outcome.
func (f *LoginForm) Submit(ctx context.Context, h *Handlers) error {
	c := f.tabs[f.active]
	defer func() {
		common.WipeByteArray(f.tabs[f.active].Password)
		f.tabs[f.active].Password = nil
	}()

	if f.active == TabRegister {
		return h.Register(ctx, c)
	}
	return h.Login(ctx, c)
}

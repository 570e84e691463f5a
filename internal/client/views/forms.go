package views

import (
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/jafa/internal/client/actions"
)

// Login shows the two-tab login form.
type Login struct {
	form *actions.LoginForm
}

func NewLogin(form *actions.LoginForm) *Login {
	return &Login{form: form}
}

func (v *Login) Render(w io.Writer) {
	tabs := []string{"Login", "Register"}
	tabs[v.form.Active()] = "[" + tabs[v.form.Active()] + "]"
	fmt.Fprintln(w, strings.Join(tabs, " "))

	vals := v.form.Values(v.form.Active())
	fmt.Fprintf(w, "%s username: %s\n", cursor(v.form.Focus() == actions.FieldUsername), vals.Username)
	fmt.Fprintf(w, "%s password: %s\n", cursor(v.form.Focus() == actions.FieldPassword), strings.Repeat("*", len(vals.Password)))
	fmt.Fprintln(w, "Type 'submit' to fill in and send, 'tab' to switch.")
}

func cursor(on bool) string {
	if on {
		return ">"
	}
	return " "
}

// SubmitPost describes the new-post form.
type SubmitPost struct{}

func (SubmitPost) Render(w io.Writer) {
	fmt.Fprintln(w, "New post")
	fmt.Fprintln(w, "Type 'submit' to enter subforum, title, body and tags.")
}

// SubmitSubforum describes the new-subforum form.
type SubmitSubforum struct{}

func (SubmitSubforum) Render(w io.Writer) {
	fmt.Fprintln(w, "New subforum")
	fmt.Fprintln(w, "Type 'submit' to enter title and description.")
}

// NotFound is shown for unknown paths.
type NotFound struct {
	Path string
}

func (v NotFound) Render(w io.Writer) {
	fmt.Fprintf(w, "Nothing at %s\n", v.Path)
}

package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/jafa/internal/client/actions"
	"github.com/dmitrijs2005/jafa/internal/client/guard"
	"github.com/dmitrijs2005/jafa/internal/client/views"
)

// getSimpleText, getPassword, getMultiline and getList are indirections
// used to facilitate testing. They point to interactive input helpers and
// can be swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getMultiline  = GetMultiline
	getList       = GetList
)

const msgSessionPending = "Checking your session, try again in a moment."

// Login opens the login tab and submits it.
func (a *App) Login(ctx context.Context) error {
	return a.openLoginTab(ctx, actions.TabLogin)
}

// Register opens the register tab and submits it. The backend signs the new
// account in.
func (a *App) Register(ctx context.Context) error {
	return a.openLoginTab(ctx, actions.TabRegister)
}

func (a *App) openLoginTab(ctx context.Context, tab actions.Tab) error {
	a.form.SwitchTab(tab)
	a.router.Navigate(guard.LoginPath)

	if path, _ := a.router.Current(); path != guard.LoginPath {
		a.println("Already logged in as", views.Status(a.store.Snapshot()))
		return nil
	}
	return a.submitLogin(ctx)
}

// submitLogin fills the active tab from the terminal and sends it. The
// password is wiped by the form whatever the outcome.
func (a *App) submitLogin(ctx context.Context) error {
	if !a.store.Snapshot().Loaded() {
		a.println(msgSessionPending)
		return nil
	}

	username, err := getSimpleText(a.reader, "Enter username", a.term)
	if err != nil {
		return err
	}
	a.form.SetUsername(username)

	password, err := getPassword(a.reader, a.term)
	if err != nil {
		return err
	}
	a.form.SetPassword(password)

	return a.form.Submit(ctx, a.handlers)
}

// Tab switches the login form between its login and register tabs.
func (a *App) Tab(ctx context.Context) error {
	if path, _ := a.router.Current(); path != guard.LoginPath {
		a.println("The login form is not open. Type 'login' or 'register'.")
		return nil
	}
	if a.form.Active() == actions.TabLogin {
		a.form.SwitchTab(actions.TabRegister)
	} else {
		a.form.SwitchTab(actions.TabLogin)
	}
	a.render(true)
	return nil
}

// Logout ends the backend session. The local session is only cleared when
// the backend confirms.
func (a *App) Logout(ctx context.Context) error {
	return a.handlers.Logout(ctx)
}

func (a *App) WhoAmI(ctx context.Context) error {
	st := a.store.Snapshot()
	u, ok := st.User()
	switch {
	case !st.Loaded():
		a.println(msgSessionPending)
	case !ok:
		a.println("Not logged in")
	case u.RegistrationDate.IsZero():
		a.println(fmt.Sprintf("Logged in as %s", u.Username))
	default:
		a.println(fmt.Sprintf("Logged in as %s, registered %s", u.Username, u.RegistrationDate.Format(time.DateOnly)))
	}
	return nil
}

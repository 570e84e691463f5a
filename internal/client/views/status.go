package views

import "github.com/dmitrijs2005/jafa/internal/client/session"

// Status is the header's user area: the username when signed in, "Login"
// otherwise, and nothing while the session is unresolved.
func Status(st session.State) string {
	if !st.Loaded() {
		return ""
	}
	if u, ok := st.User(); ok {
		return u.Username
	}
	return "Login"
}

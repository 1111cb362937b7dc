package domain

import "unicode"

// User is the authenticated account shown across the main views.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Initials returns the upper-cased first letter of the user's name, used as
// the avatar in the drawer and profile views.
func (u *User) Initials() string {
	if u == nil || u.Name == "" {
		return "?"
	}
	r := []rune(u.Name)
	return string(unicode.ToUpper(r[0]))
}

// SessionState is a snapshot of the session. IsAuthenticated is true if and
// only if User is non-nil; construct values with Authenticated or Anonymous.
type SessionState struct {
	User            *User
	IsAuthenticated bool
}

// Authenticated returns the state for a signed-in user.
func Authenticated(u User) SessionState {
	return SessionState{User: &u, IsAuthenticated: true}
}

// Anonymous returns the signed-out state.
func Anonymous() SessionState {
	return SessionState{}
}

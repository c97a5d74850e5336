package models

// Session is the in-memory record of who is signed in. Token and User are
// either both set or both nil.
type Session struct {
	Token *string
	User  *User
}

// NewSession returns a populated session holding copies of token and user.
func NewSession(token string, user User) Session {
	return Session{Token: &token, User: &user}
}

// Authenticated reports whether both halves of the session are present.
func (s Session) Authenticated() bool {
	return s.Token != nil && s.User != nil
}

// Clone returns a deep copy so callers can't mutate the store's state.
func (s Session) Clone() Session {
	if !s.Authenticated() {
		return Session{}
	}
	return NewSession(*s.Token, *s.User)
}

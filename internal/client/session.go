package client

// Session is the per-user client state. Create one with NewSession and pass
// it to every Client call.
type Session struct {
	Authenticated bool
	Token         string
	EditMode      bool
	CurrentUser   string
}

func NewSession() *Session {
	return &Session{}
}

// Logout returns the session to its initial state.
func (s *Session) Logout() {
	*s = Session{}
}

func (s *Session) signIn(email, token string) {
	s.Authenticated = true
	s.Token = token
	s.CurrentUser = email
	s.EditMode = false
}

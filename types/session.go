package types

// Session is the authenticated caller, set by middleware.Auth.
type Session struct {
	UserID uint64
	Email  string
	Role   string
}

func (s *Session) Is(role string) bool {
	return s != nil && s.Role == role
}

package models

// Session identifies the shopper behind a request. The zero value is an
// anonymous shopper.
type Session struct {
	UserID string
	Email  string
}

func (s Session) Anonymous() bool {
	return s.UserID == ""
}

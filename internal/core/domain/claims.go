package domain

import "errors"

var ErrInvalidToken = errors.New("invalid or expired token")

// Claims is the identity carried inside a session token. It deliberately
// has no password field.
type Claims struct {
	AccountID uint   `json:"account_id"`
	FirstName string `json:"account_firstname"`
	LastName  string `json:"account_lastname"`
	Email     string `json:"account_email"`
	Type      Role   `json:"account_type"`
}

// ClaimsFor derives token claims from an account.
func ClaimsFor(a *Account) Claims {
	return Claims{
		AccountID: a.ID,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Email:     a.Email,
		Type:      a.Type,
	}
}

// HasRole reports whether the claims carry one of roles.
func (c Claims) HasRole(roles ...Role) bool {
	for _, r := range roles {
		if c.Type == r {
			return true
		}
	}
	return false
}

package domain

import (
	"errors"
	"strings"
)

// Role is the closed set of account privilege levels.
type Role string

const (
	RoleClient   Role = "Client"
	RoleEmployee Role = "Employee"
	RoleAdmin    Role = "Admin"
)

// Roles lists every valid role in display order.
var Roles = []Role{RoleClient, RoleEmployee, RoleAdmin}

var (
	ErrAccountNotFound    = errors.New("account not found")
	ErrEmailExists        = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidRole        = errors.New("invalid account type")
	ErrTooManyAttempts    = errors.New("too many login attempts")
	ErrPasswordHash       = errors.New("password hashing failed")
)

// ParseRole maps user input onto a Role. Empty input yields RoleClient.
func ParseRole(s string) (Role, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return RoleClient, nil
	}
	for _, r := range Roles {
		if strings.EqualFold(s, string(r)) {
			return r, nil
		}
	}
	return "", ErrInvalidRole
}

// Valid reports whether r is one of Roles.
func (r Role) Valid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

// Account is a registered identity. PasswordHash never leaves the store
// layer serialized.
type Account struct {
	ID           uint   `json:"account_id" gorm:"column:account_id;primaryKey"`
	FirstName    string `json:"account_firstname" gorm:"column:account_firstname;not null"`
	LastName     string `json:"account_lastname" gorm:"column:account_lastname;not null"`
	Email        string `json:"account_email" gorm:"column:account_email;uniqueIndex;not null"`
	PasswordHash string `json:"-" gorm:"column:account_password;not null"`
	Type         Role   `json:"account_type" gorm:"column:account_type;not null;default:Client"`
}

func (Account) TableName() string { return "account" }

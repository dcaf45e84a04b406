package domain

import "time"

// ActivityKind names an account lifecycle event kept in the audit trail.
type ActivityKind string

const (
	ActivityRegister       ActivityKind = "register"
	ActivityLogin          ActivityKind = "login"
	ActivityLoginFailed    ActivityKind = "login_failed"
	ActivityLogout         ActivityKind = "logout"
	ActivityProfileUpdate  ActivityKind = "profile_update"
	ActivityPasswordChange ActivityKind = "password_change"
)

var activityLabels = map[ActivityKind]string{
	ActivityRegister:       "Registered",
	ActivityLogin:          "Logged in",
	ActivityLoginFailed:    "Failed login",
	ActivityLogout:         "Logged out",
	ActivityProfileUpdate:  "Updated account",
	ActivityPasswordChange: "Changed password",
}

// Label is the human-readable form shown on the account page.
func (k ActivityKind) Label() string {
	if l, ok := activityLabels[k]; ok {
		return l
	}
	return string(k)
}

// Activity is one audit record. It never carries secrets.
type Activity struct {
	Kind      ActivityKind `json:"kind" bson:"kind"`
	AccountID uint         `json:"account_id,omitempty" bson:"account_id,omitempty"`
	Email     string       `json:"email" bson:"email"`
	IP        string       `json:"ip,omitempty" bson:"ip,omitempty"`
	RequestID string       `json:"request_id,omitempty" bson:"request_id,omitempty"`
	At        time.Time    `json:"at" bson:"at"`
}

package domain

import "strings"

// FieldError is a single (field, message) validation failure.
type FieldError struct {
	Field   string
	Message string
}

// ValidationErrors is the ordered result of validating one submitted form.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	msgs := make([]string, 0, len(v))
	for _, fe := range v {
		msgs = append(msgs, fe.Field+": "+fe.Message)
	}
	return strings.Join(msgs, "; ")
}

// For returns the message recorded against field, if any.
func (v ValidationErrors) For(field string) string {
	for _, fe := range v {
		if fe.Field == field {
			return fe.Message
		}
	}
	return ""
}

// Messages returns every message in order.
func (v ValidationErrors) Messages() []string {
	out := make([]string, len(v))
	for i, fe := range v {
		out[i] = fe.Message
	}
	return out
}

package handler

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"sync"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/csemotors/dealership/internal/core/domain"
)

const (
	minPasswordLength = 12
	// bcrypt ignores input past 72 bytes.
	maxPasswordBytes = 72

	emailExistsMessage = "Email exists. Please log in or use different email"
)

// EmailChecker is the store lookup behind the email_available rule.
type EmailChecker interface {
	EmailAvailable(ctx context.Context, email string, exceptID uint) (bool, error)
}

// FormValidator wraps go-playground/validator so Echo can call
// c.Validate(form), and collects failures as ordered field errors.
type FormValidator struct {
	v        *validator.Validate
	accounts EmailChecker
	log      zerolog.Logger
	fields   sync.Map // reflect.Type -> []fieldMeta
}

type fieldMeta struct {
	name    string // form field name
	goName  string
	message string
}

// NewValidator returns a FormValidator ready to be assigned to echo.Echo.Validator.
func NewValidator(accounts EmailChecker, log zerolog.Logger) *FormValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("form"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	fv := &FormValidator{v: v, accounts: accounts, log: log}
	_ = v.RegisterValidation("password", validPassword)
	_ = v.RegisterValidation("review_rating", validRating)
	_ = v.RegisterValidationCtx("email_available", fv.emailAvailable)
	v.RegisterStructValidationCtx(fv.emailAvailableForUpdate, updateAccountForm{})
	return fv
}

// Validate satisfies the echo.Validator interface.
func (fv *FormValidator) Validate(i any) error {
	return fv.ValidateCtx(context.Background(), i)
}

// ValidateCtx runs every rule on i. Validation failures come back as
// domain.ValidationErrors in field declaration order, one per field.
func (fv *FormValidator) ValidateCtx(ctx context.Context, i any) error {
	err := fv.v.StructCtx(ctx, i)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}

	meta := fv.meta(reflect.TypeOf(i))
	position := make(map[string]int, len(meta))
	for idx, m := range meta {
		position[m.goName] = idx
	}

	sorted := make([]validator.FieldError, len(ve))
	copy(sorted, ve)
	sort.SliceStable(sorted, func(a, b int) bool {
		return position[sorted[a].StructField()] < position[sorted[b].StructField()]
	})

	out := make(domain.ValidationErrors, 0, len(sorted))
	seen := make(map[string]struct{}, len(sorted))
	for _, fe := range sorted {
		if _, dup := seen[fe.Field()]; dup {
			continue
		}
		seen[fe.Field()] = struct{}{}

		msg := ""
		if idx, ok := position[fe.StructField()]; ok {
			msg = meta[idx].message
		}
		out = append(out, domain.FieldError{Field: fe.Field(), Message: fieldError(fe, msg)})
	}
	return out
}

func (fv *FormValidator) meta(t reflect.Type) []fieldMeta {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if cached, ok := fv.fields.Load(t); ok {
		return cached.([]fieldMeta)
	}

	meta := make([]fieldMeta, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name, _, _ := strings.Cut(f.Tag.Get("form"), ",")
		meta = append(meta, fieldMeta{name: name, goName: f.Name, message: f.Tag.Get("msg")})
	}
	fv.fields.Store(t, meta)
	return meta
}

// emailAvailable checks the store. A lookup failure passes the rule and
// leaves the unique index to reject a duplicate.
func (fv *FormValidator) emailAvailable(ctx context.Context, fl validator.FieldLevel) bool {
	return fv.available(ctx, fl.Field().String(), 0)
}

// emailAvailableForUpdate checks the new email only when it differs from the
// account's current one, and only once it is well formed.
func (fv *FormValidator) emailAvailableForUpdate(ctx context.Context, sl validator.StructLevel) {
	f, ok := sl.Current().Interface().(updateAccountForm)
	if !ok || f.ID == 0 {
		return
	}
	if sl.Validator().Var(f.Email, "required,email") != nil {
		return
	}
	if !fv.available(ctx, f.Email, f.ID) {
		sl.ReportError(f.Email, "account_email", "Email", "email_available", "")
	}
}

func (fv *FormValidator) available(ctx context.Context, email string, exceptID uint) bool {
	ok, err := fv.accounts.EmailAvailable(ctx, email, exceptID)
	if err != nil {
		fv.log.Warn().Err(err).Msg("email availability check failed")
		return true
	}
	return ok
}

// validPassword requires at least 12 characters with an upper-case letter,
// a lower-case letter, a digit and a symbol, and no whitespace.
func validPassword(fl validator.FieldLevel) bool {
	pw := fl.Field().String()
	if len([]rune(pw)) < minPasswordLength || len(pw) > maxPasswordBytes {
		return false
	}

	var upper, lower, digit, symbol bool
	for _, r := range pw {
		switch {
		case unicode.IsSpace(r):
			return false
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			symbol = true
		}
	}
	return upper && lower && digit && symbol
}

// validRating accepts a whole number from 1 to 5.
func validRating(fl validator.FieldLevel) bool {
	n, err := strconv.Atoi(strings.TrimSpace(fl.Field().String()))
	return err == nil && n >= domain.MinReviewRating && n <= domain.MaxReviewRating
}

// fieldError converts a single FieldError into a human-readable message.
// The field's msg tag wins over the generic wording.
func fieldError(fe validator.FieldError, msg string) string {
	if fe.Tag() == "email_available" {
		return emailExistsMessage
	}
	if msg != "" {
		return msg
	}

	field := strings.ReplaceAll(fe.Field(), "_", " ")
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}

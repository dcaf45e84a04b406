package handler

import (
	"strconv"
	"strings"
)

// form is implemented by every bound request body. normalize runs after
// binding and before validation.
type form interface {
	normalize()
}

type registerForm struct {
	FirstName string `form:"account_firstname" validate:"required" msg:"Please provide a first name."`
	LastName  string `form:"account_lastname" validate:"required" msg:"Please provide a last name."`
	Email     string `form:"account_email" validate:"required,email,email_available" msg:"A valid email is required."`
	Password  string `form:"account_password" validate:"required,password" msg:"Password does not meet requirements."`
	Type      string `form:"account_type" validate:"omitempty,oneof=Client Employee Admin" msg:"Please choose a valid account type."`
}

func (f *registerForm) normalize() {
	f.FirstName = strings.TrimSpace(f.FirstName)
	f.LastName = strings.TrimSpace(f.LastName)
	f.Email = normalizeEmail(f.Email)
	f.Type = strings.TrimSpace(f.Type)
}

type loginForm struct {
	Email    string `form:"account_email" validate:"required,email" msg:"A valid email is required."`
	Password string `form:"account_password" validate:"required" msg:"Password is required."`
}

func (f *loginForm) normalize() {
	f.Email = normalizeEmail(f.Email)
}

// updateAccountForm is checked for email availability at struct level so
// the account's own address passes.
type updateAccountForm struct {
	ID        uint   `form:"account_id" validate:"required" msg:"Invalid account ID."`
	FirstName string `form:"account_firstname" validate:"required" msg:"Please provide a first name."`
	LastName  string `form:"account_lastname" validate:"required" msg:"Please provide a last name."`
	Email     string `form:"account_email" validate:"required,email" msg:"A valid email is required."`
}

func (f *updateAccountForm) normalize() {
	f.FirstName = strings.TrimSpace(f.FirstName)
	f.LastName = strings.TrimSpace(f.LastName)
	f.Email = normalizeEmail(f.Email)
}

type changePasswordForm struct {
	ID       uint   `form:"account_id" validate:"required" msg:"Invalid account ID."`
	Password string `form:"account_password" validate:"required,password" msg:"Password does not meet requirements."`
}

func (f *changePasswordForm) normalize() {}

// reviewForm keeps the rating as text so a non-numeric value fails
// validation instead of binding.
type reviewForm struct {
	Rating    string `form:"review_rating" validate:"required,review_rating" msg:"Rating must be a whole number between 1 and 5."`
	Text      string `form:"review_text" validate:"required,min=10" msg:"Review must be at least 10 characters long."`
	VehicleID uint   `form:"inv_id" validate:"required" msg:"Invalid vehicle ID."`
	AccountID uint   `form:"account_id" validate:"required" msg:"Invalid account ID."`
}

func (f *reviewForm) normalize() {
	f.Rating = strings.TrimSpace(f.Rating)
	f.Text = strings.TrimSpace(f.Text)
}

func (f *reviewForm) rating() int {
	n, _ := strconv.Atoi(f.Rating)
	return n
}

type reviewUpdateForm struct {
	ReviewID uint   `form:"review_id" validate:"required" msg:"Invalid review ID."`
	Rating   string `form:"review_rating" validate:"required,review_rating" msg:"Rating must be a whole number between 1 and 5."`
	Text     string `form:"review_text" validate:"required,min=10" msg:"Review must be at least 10 characters long."`
}

func (f *reviewUpdateForm) normalize() {
	f.Rating = strings.TrimSpace(f.Rating)
	f.Text = strings.TrimSpace(f.Text)
}

func (f *reviewUpdateForm) rating() int {
	n, _ := strconv.Atoi(f.Rating)
	return n
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

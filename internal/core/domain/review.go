package domain

import (
	"errors"
	"time"
)

var ErrReviewNotFound = errors.New("review not found")

// ErrForbidden is returned when the caller acts on a record owned by
// another account.
var ErrForbidden = errors.New("access forbidden")

const (
	MinReviewRating = 1
	MaxReviewRating = 5
)

// Review is a customer rating of a vehicle.
type Review struct {
	ID        uint      `json:"review_id" gorm:"column:review_id;primaryKey"`
	Text      string    `json:"review_text" gorm:"column:review_text;not null"`
	Rating    int       `json:"review_rating" gorm:"column:review_rating;not null"`
	Date      time.Time `json:"review_date" gorm:"column:review_date;autoCreateTime;index"`
	VehicleID uint      `json:"inv_id" gorm:"column:inv_id;index;not null"`
	AccountID uint      `json:"account_id" gorm:"column:account_id;index;not null"`
}

func (Review) TableName() string { return "review" }

// ReviewDetail is a review joined with its author and vehicle for display.
type ReviewDetail struct {
	Review
	AuthorFirstName string `gorm:"column:account_firstname"`
	AuthorLastName  string `gorm:"column:account_lastname"`
	VehicleYear     string `gorm:"column:inv_year"`
	VehicleMake     string `gorm:"column:inv_make"`
	VehicleModel    string `gorm:"column:inv_model"`
}

// ScreenName abbreviates the author as first initial plus last name.
func (r ReviewDetail) ScreenName() string {
	if r.AuthorFirstName == "" {
		return r.AuthorLastName
	}
	return string([]rune(r.AuthorFirstName)[0]) + r.AuthorLastName
}

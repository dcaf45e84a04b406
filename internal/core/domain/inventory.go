package domain

import "errors"

var (
	ErrClassificationNotFound = errors.New("classification not found")
	ErrVehicleNotFound        = errors.New("vehicle not found")
)

// Classification groups vehicles for navigation (e.g. "SUV", "Truck").
type Classification struct {
	ID   uint   `json:"classification_id" gorm:"column:classification_id;primaryKey"`
	Name string `json:"classification_name" gorm:"column:classification_name;uniqueIndex;not null"`
}

func (Classification) TableName() string { return "classification" }

// Vehicle is one inventory item.
type Vehicle struct {
	ID               uint    `json:"inv_id" gorm:"column:inv_id;primaryKey"`
	Make             string  `json:"inv_make" gorm:"column:inv_make;not null"`
	Model            string  `json:"inv_model" gorm:"column:inv_model;not null"`
	Year             string  `json:"inv_year" gorm:"column:inv_year;size:4;not null"`
	Description      string  `json:"inv_description" gorm:"column:inv_description;not null"`
	Image            string  `json:"inv_image" gorm:"column:inv_image;not null"`
	Thumbnail        string  `json:"inv_thumbnail" gorm:"column:inv_thumbnail;not null"`
	Price            float64 `json:"inv_price" gorm:"column:inv_price;not null"`
	Miles            int     `json:"inv_miles" gorm:"column:inv_miles;not null"`
	Color            string  `json:"inv_color" gorm:"column:inv_color;not null"`
	ClassificationID uint    `json:"classification_id" gorm:"column:classification_id;index;not null"`
}

func (Vehicle) TableName() string { return "inventory" }

// Title is the make and model, as shown in page headings.
func (v *Vehicle) Title() string {
	return v.Make + " " + v.Model
}

package models

import (
	"time"
)

// Item is a food product record. Nutritional values are per 100 g; a nil
// value means "not recorded", which is distinct from zero.
type Item struct {
	ID                  uint      `gorm:"primaryKey" json:"id"`
	Name                string    `gorm:"size:200;not null" json:"name"`
	Category            string    `gorm:"size:50;not null" json:"category"`
	Certificate         string    `gorm:"size:100" json:"certificate,omitempty"`
	ImageURL            string    `gorm:"size:2048" json:"imageUrl,omitempty"`
	Energy              *float64  `json:"energy"`
	Carbohydrates       *float64  `json:"carbohydrates"`
	Sugar               *float64  `json:"sugar"`
	Protein             *float64  `json:"protein"`
	Fat                 *float64  `json:"fat"`
	SaturatedFat        *float64  `json:"saturatedFat"`
	UnsaturatedFat      *float64  `json:"unsaturatedFat"`
	Fibre               *float64  `json:"fibre"`
	Salt                *float64  `json:"salt"`
	CountryOfOrigin     string    `gorm:"size:50;not null" json:"countryOfOrigin"`
	CountryOfProvenance string    `gorm:"size:50;not null" json:"countryOfProvenance"`
	CreatedDate         time.Time `gorm:"not null" json:"createdDate"`
	UpdatedDate         time.Time `gorm:"not null" json:"updatedDate"`
}

// ApplyChanges copies the mutable fields of src onto i. Identity and
// creation time are left untouched.
func (i *Item) ApplyChanges(src *Item) {
	i.Name = src.Name
	i.Category = src.Category
	i.Certificate = src.Certificate
	i.ImageURL = src.ImageURL
	i.Energy = src.Energy
	i.Carbohydrates = src.Carbohydrates
	i.Sugar = src.Sugar
	i.Protein = src.Protein
	i.Fat = src.Fat
	i.SaturatedFat = src.SaturatedFat
	i.UnsaturatedFat = src.UnsaturatedFat
	i.Fibre = src.Fibre
	i.Salt = src.Salt
	i.CountryOfOrigin = src.CountryOfOrigin
	i.CountryOfProvenance = src.CountryOfProvenance
}

package models

import (
	"gorm.io/gorm"
)

type Product struct {
	gorm.Model
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price" gorm:"type:numeric(10,2)"`
	CompanyID   uint    `json:"company_id" gorm:"index;not null"`
	Company     Company `json:"-"`
	Trips       []Trip  `json:"-"`
}

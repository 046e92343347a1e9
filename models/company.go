package models

import "time"

// Company represents the companies table. Each reporting tenant owns one
// company record; standards, stakeholders and reports hang off it.
type Company struct {
	CompanyID int        `gorm:"primaryKey;column:company_id" json:"company_id"`
	Name      string     `gorm:"column:name" json:"name"`
	CreateAt  time.Time  `gorm:"column:create_at" json:"create_at"`
	UpdateAt  time.Time  `gorm:"column:update_at" json:"update_at"`
	DeleteAt  *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`
}

// Standard is a reporting standard (e.g. GRI) scoped to a company.
type Standard struct {
	StandardID int    `gorm:"primaryKey;column:standard_id" json:"standard_id"`
	CompanyID  int    `gorm:"column:company_id" json:"company_id"`
	Name       string `gorm:"column:name" json:"name"`

	Dimensions []Dimension `gorm:"foreignKey:StandardID" json:"dimensions,omitempty"`
}

// Dimension groups topics within a standard (environmental, social, ...).
type Dimension struct {
	DimensionID int    `gorm:"primaryKey;column:dimension_id" json:"dimension_id"`
	StandardID  int    `gorm:"column:standard_id" json:"standard_id"`
	Name        string `gorm:"column:name" json:"name"`

	Topics []Topic `gorm:"foreignKey:DimensionID" json:"topics,omitempty"`
}

// TableName overrides
func (Company) TableName() string {
	return "companies"
}

func (Standard) TableName() string {
	return "standards"
}

func (Dimension) TableName() string {
	return "dimensions"
}

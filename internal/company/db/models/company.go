// Package models contains the storage models for the application,
// configured to work using GORM as the ORM.
package models

import (
	"time"

	domain "github.com/gartstein/hiringboard/internal/company/models"
	"github.com/google/uuid"
)

// Company represents a company row in the database.
// It uses a UUID as the primary key. Rows are hard-deleted so a freed
// name can be taken again under the unique index.
type Company struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name            string    `gorm:"size:100;not null;uniqueIndex"`
	Status          string    `gorm:"size:16;not null"`
	ApplicationLink string    `gorm:"size:200;not null"`
	Notes           string    `gorm:"type:text;not null"`
	CreatedAt       time.Time `gorm:"index"`
	UpdatedAt       time.Time
}

// TableName pins the table name regardless of naming strategy.
func (Company) TableName() string {
	return "companies"
}

// FromDomain builds a row from the domain model.
func FromDomain(c *domain.Company) *Company {
	return &Company{
		ID:              c.ID,
		Name:            c.Name,
		Status:          string(c.Status),
		ApplicationLink: c.ApplicationLink,
		Notes:           c.Notes,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}

// ToDomain converts the row back into the domain model.
func (c *Company) ToDomain() *domain.Company {
	return &domain.Company{
		ID:              c.ID,
		Name:            c.Name,
		Status:          domain.Status(c.Status),
		ApplicationLink: c.ApplicationLink,
		Notes:           c.Notes,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}

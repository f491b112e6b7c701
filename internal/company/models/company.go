// Package models defines the core domain models for the Company entity.
// It includes definitions for Company, CompanyUpdate, and the Status enumeration.
package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Status represents the hiring status of a company.
type Status string

const (
	// StatusHiring marks a company that is actively hiring. It is the default.
	StatusHiring  Status = "Hiring"
	StatusLayoffs Status = "Layoffs"
)

// Statuses lists every accepted Status in display order.
var Statuses = []Status{StatusHiring, StatusLayoffs}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// Company defines the domain model for a company entity.
type Company struct {
	// ID is the internal identifier. It is never exposed over the API.
	ID uuid.UUID
	// Name is the company's name and its natural identifier.
	Name string `json:"name" validate:"required,max=100"`
	// Status is the company's current hiring status.
	Status Status `json:"status" validate:"required,status"`
	// ApplicationLink points at the company's careers page.
	ApplicationLink string `json:"application_link" validate:"max=200"`
	// Notes holds free-form notes.
	Notes string `json:"notes"`
	// CreatedAt records the timestamp when the company was created.
	CreatedAt time.Time
	// UpdatedAt records the timestamp when the company was last updated.
	UpdatedAt time.Time
}

// Normalize trims surrounding whitespace from the name.
func (c *Company) Normalize() {
	c.Name = strings.TrimSpace(c.Name)
}

// ApplyDefaults fills in the default values of optional fields left empty.
func (c *Company) ApplyDefaults() {
	if c.Status == "" {
		c.Status = StatusHiring
	}
}

// CompanyUpdate represents the fields that can be updated for a Company.
// Pointer types are used to allow partial updates.
type CompanyUpdate struct {
	// Name is the new name for the company.
	Name *string
	// Status is the new hiring status.
	Status *Status
	// ApplicationLink is the new application link.
	ApplicationLink *string
	// Notes replaces the notes.
	Notes *string
}

// Apply copies every set field of u onto c.
func (u *CompanyUpdate) Apply(c *Company) {
	if u.Name != nil {
		c.Name = *u.Name
	}
	if u.Status != nil {
		c.Status = *u.Status
	}
	if u.ApplicationLink != nil {
		c.ApplicationLink = *u.ApplicationLink
	}
	if u.Notes != nil {
		c.Notes = *u.Notes
	}
}

// Empty reports whether the update carries no fields.
func (u *CompanyUpdate) Empty() bool {
	return u.Name == nil && u.Status == nil && u.ApplicationLink == nil && u.Notes == nil
}

package domain

import "time"

// Role distinguishes the two account types in the marketplace.
type Role string

const (
	RoleTourist Role = "TOURIST"
	RolePartner Role = "PARTNER"
)

// Profile represents a tourist or partner account.
// Business fields are only populated for partners.
type Profile struct {
	ID              string
	Role            Role
	FullName        string
	Email           string
	BusinessName    string
	RUT             string // Uruguayan tax identifier
	BusinessAddress string
	BusinessCity    string
	BusinessPhone   string
	CreatedAt       time.Time
}

// DisplayName returns the name shown to tourists: the business name for
// partners when set, otherwise the personal name.
func (p *Profile) DisplayName() string {
	if p.Role == RolePartner && p.BusinessName != "" {
		return p.BusinessName
	}
	return p.FullName
}

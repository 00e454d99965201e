package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleUser, RoleAdmin:
		return Role(s), nil
	}
	return "", NewValidationError("role", fmt.Sprintf("must be %q or %q, got %q", RoleUser, RoleAdmin, s))
}

// Profile shares its id with the auth provider's user id.
type Profile struct {
	ID        uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Email     string    `json:"email" gorm:"type:varchar(255);index"`
	FullName  string    `json:"fullName" gorm:"type:varchar(200)"`
	Role      Role      `json:"role" gorm:"type:varchar(10);not null;default:'user'"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

func (p *Profile) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}

// Identity is the authenticated caller as asserted by the auth provider.
type Identity struct {
	UserID   uuid.UUID
	Email    string
	FullName string
}

func (i *Identity) Authenticated() bool {
	return i != nil && i.UserID != uuid.Nil
}

package model

import (
	"time"
)

type UserRole string

const (
	Learner    UserRole = "learner"
	Instructor UserRole = "instructor"
	Admin      UserRole = "admin"
	SuperAdmin UserRole = "superadmin"
)

var Roles = []UserRole{Learner, Admin, Instructor, SuperAdmin}

// ParseRole falls back to Learner for unknown or empty values.
func ParseRole(s string) UserRole {
	for _, r := range Roles {
		if string(r) == s {
			return r
		}
	}
	return Learner
}

// IsStaff reports whether the role may manage courses and grade work.
func (r UserRole) IsStaff() bool {
	return r == Instructor || r == Admin || r == SuperAdmin
}

// swagger:model User
type User struct {
	// ID is issued by the identity provider and never changes.
	ID        string    `gorm:"primaryKey;type:varchar(128)" json:"id"`
	Name      string    `gorm:"size:100" json:"name"`
	Email     string    `gorm:"size:255;index" json:"email"`
	Role      UserRole  `gorm:"size:20;default:'learner'" json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	LastSeen  time.Time `json:"lastSeen"`
}

func (User) TableName() string {
	return "users"
}

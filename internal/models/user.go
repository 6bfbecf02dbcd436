package models

import (
	"time"
)

const (
	RoleMember = "member"
	RoleAdmin  = "admin"
)

// PointsPerCredit eco-points make one credit.
const PointsPerCredit = 100

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`      // member, admin
	EcoPoints int       `json:"ecoPoints"` // never decreases
	Credits   int       `json:"credits"`   // derived from EcoPoints
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// StoredUser is the persisted record. The password never leaves the store.
type StoredUser struct {
	User
	Password string `json:"password"`
}

// Public strips the password.
func (u StoredUser) Public() User {
	return u.User
}

// CreditsFor returns the credits earned by the given eco-points.
func CreditsFor(ecoPoints int) int {
	if ecoPoints < 0 {
		return 0
	}
	return ecoPoints / PointsPerCredit
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

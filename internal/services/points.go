package services

import (
	"time"

	"smartrubbish/internal/models"
)

// Point actions
const (
	ActionReportSubmitted = "Report submitted"
)

// Point values
const (
	PointsReportSubmitted = 10
)

// PointAward describes a completed eco-point award.
type PointAward struct {
	UserID    string           `json:"userId"`
	Amount    int              `json:"amount"`
	EcoPoints int              `json:"ecoPoints"`
	Credits   int              `json:"credits"`
	Log       *models.PointLog `json:"log,omitempty"` // nil when the ledger entry could not be written
}

// applyPoints adds amount to the user and recomputes credits.
func applyPoints(u *models.StoredUser, amount int, now time.Time) {
	u.EcoPoints += amount
	if u.EcoPoints < 0 {
		u.EcoPoints = 0
	}
	u.Credits = models.CreditsFor(u.EcoPoints)
	u.UpdatedAt = now
}

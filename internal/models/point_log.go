package models

import (
	"time"
)

type PointLog struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Amount    int       `json:"amount"`
	Action    string    `json:"action"`
	ReportID  string    `json:"reportId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

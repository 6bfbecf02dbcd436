package models

import (
	"time"
)

type ReportStatus string

const (
	StatusPending  ReportStatus = "pending"
	StatusReviewed ReportStatus = "reviewed"
	StatusResolved ReportStatus = "resolved"
)

var statusRank = map[ReportStatus]int{
	StatusPending:  0,
	StatusReviewed: 1,
	StatusResolved: 2,
}

func (s ReportStatus) Valid() bool {
	_, ok := statusRank[s]
	return ok
}

// CanAdvanceTo reports whether next is strictly later in pending -> reviewed -> resolved.
func (s ReportStatus) CanAdvanceTo(next ReportStatus) bool {
	from, ok := statusRank[s]
	if !ok {
		return false
	}
	to, ok := statusRank[next]
	return ok && to > from
}

type Location struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Address string  `json:"address"`
}

type Report struct {
	ID          string       `json:"id"`
	UserID      string       `json:"userId"` // Reporter
	Type        string       `json:"type"`
	Description string       `json:"description"`
	Photo       string       `json:"photo,omitempty"`
	Location    Location     `json:"location"`
	Timestamp   time.Time    `json:"timestamp"`
	Status      ReportStatus `json:"status"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

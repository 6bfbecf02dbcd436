package models

import (
	"time"
)

type NotificationType string

const (
	NotificationReportReviewed NotificationType = "report_reviewed"
	NotificationReportResolved NotificationType = "report_resolved"
)

type Notification struct {
	ID        string           `json:"id"`
	UserID    string           `json:"userId"` // Receiver
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	ReportID  string           `json:"reportId"`
	Read      bool             `json:"read"`
	CreatedAt time.Time        `json:"createdAt"`
}

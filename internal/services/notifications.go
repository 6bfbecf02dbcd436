package services

import (
	"fmt"
	"log"
	"sort"
	"time"

	"smartrubbish/internal/apperrors"
	"smartrubbish/internal/models"
	"smartrubbish/internal/storage"
	"smartrubbish/internal/utils"
)

// ReportSummary carries the report details rendered into a notification.
type ReportSummary struct {
	Type    string
	Address string
}

type NotificationService struct {
	store *storage.Adapter
	now   func() time.Time
}

func NewNotificationService(store *storage.Adapter) *NotificationService {
	return &NotificationService{store: store, now: time.Now}
}

// Render returns the title and message for a notification kind.
func Render(kind models.NotificationType, r ReportSummary) (title, message string, ok bool) {
	switch kind {
	case models.NotificationReportReviewed:
		return "✅ Report Reviewed",
			fmt.Sprintf("Your report about \"%s\" at %s has been reviewed by our team.", r.Type, r.Address), true
	case models.NotificationReportResolved:
		return "🎉 Report Resolved",
			fmt.Sprintf("Great news! Your report about \"%s\" at %s has been resolved. Thank you for helping keep Sydney clean!", r.Type, r.Address), true
	}
	return "", "", false
}

// NotificationFor maps a report status to the notification it triggers.
func NotificationFor(status models.ReportStatus) (models.NotificationType, bool) {
	switch status {
	case models.StatusReviewed:
		return models.NotificationReportReviewed, true
	case models.StatusResolved:
		return models.NotificationReportResolved, true
	}
	return "", false
}

// Notify appends an unread notification for userID.
func (s *NotificationService) Notify(userID, reportID string, kind models.NotificationType, summary ReportSummary) (*models.Notification, error) {
	title, message, ok := Render(kind, summary)
	if !ok {
		return nil, apperrors.New(apperrors.CodeNotification, fmt.Sprintf("Unknown notification type %q", kind))
	}

	notifications, ok, err := storage.LoadCollection[models.Notification](s.store, storage.Notifications)
	if !ok || err != nil {
		log.Printf("[Storage Error %s]: Failed to create notification", apperrors.CodeNotification)
		return nil, apperrors.New(apperrors.CodeNotification, "Failed to create notification")
	}

	n := models.Notification{
		ID:        utils.NewID("notification"),
		UserID:    userID,
		Type:      kind,
		Title:     title,
		Message:   message,
		ReportID:  reportID,
		Read:      false,
		CreatedAt: s.now().UTC(),
	}
	if !storage.SaveCollection(s.store, storage.Notifications, append(notifications, n)) {
		return nil, apperrors.New(apperrors.CodeNotification, "Failed to create notification")
	}
	return &n, nil
}

func (s *NotificationService) load() ([]models.Notification, bool) {
	notifications, ok, err := storage.LoadCollection[models.Notification](s.store, storage.Notifications)
	if !ok || err != nil {
		log.Printf("[Storage Error %s]: Failed to read notifications", apperrors.CodeNotificationRead)
		return nil, false
	}
	return notifications, true
}

// ListFor returns a member's notifications, newest first.
func (s *NotificationService) ListFor(userID string) []models.Notification {
	all, _ := s.load()
	out := make([]models.Notification, 0)
	for _, n := range all {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (s *NotificationService) UnreadCount(userID string) int {
	count := 0
	for _, n := range s.ListFor(userID) {
		if !n.Read {
			count++
		}
	}
	return count
}

func (s *NotificationService) Get(notificationID string) (*models.Notification, bool) {
	all, _ := s.load()
	for _, n := range all {
		if n.ID == notificationID {
			return &n, true
		}
	}
	return nil, false
}

// MarkRead reports false when the notification is unknown or the write fails.
func (s *NotificationService) MarkRead(notificationID string) bool {
	all, ok := s.load()
	if !ok {
		return false
	}
	for i := range all {
		if all[i].ID == notificationID {
			all[i].Read = true
			return storage.SaveCollection(s.store, storage.Notifications, all)
		}
	}
	return false
}

func (s *NotificationService) MarkAllRead(userID string) bool {
	all, ok := s.load()
	if !ok {
		return false
	}
	for i := range all {
		if all[i].UserID == userID {
			all[i].Read = true
		}
	}
	return storage.SaveCollection(s.store, storage.Notifications, all)
}

// Delete reports false when the notification is unknown or the write fails.
func (s *NotificationService) Delete(notificationID string) bool {
	all, ok := s.load()
	if !ok {
		return false
	}
	for i := range all {
		if all[i].ID == notificationID {
			return storage.SaveCollection(s.store, storage.Notifications, append(all[:i], all[i+1:]...))
		}
	}
	return false
}

package services

import (
	"log"

	"smartrubbish/internal/models"
)

// TriageOutcome reports what a status change did. Notification and Email are
// nil when that side effect was skipped or failed.
type TriageOutcome struct {
	Report       *models.Report       `json:"report"`
	Notification *models.Notification `json:"notification,omitempty"`
	Email        *Email               `json:"email,omitempty"`
}

// TriageService drives the administrator workflow for a report.
type TriageService struct {
	reports       *ReportService
	accounts      *AccountService
	notifications *NotificationService
	mail          *MailService
}

func NewTriageService(reports *ReportService, accounts *AccountService, notifications *NotificationService, mail *MailService) *TriageService {
	return &TriageService{
		reports:       reports,
		accounts:      accounts,
		notifications: notifications,
		mail:          mail,
	}
}

// Advance moves the report to status, notifies its owner and mirrors the
// notification by email. An unknown report id returns nil, nil.
func (s *TriageService) Advance(reportID string, status models.ReportStatus) (*TriageOutcome, error) {
	report, err := s.reports.UpdateStatus(reportID, status)
	if err != nil || report == nil {
		return nil, err
	}

	out := &TriageOutcome{Report: report}

	kind, ok := NotificationFor(status)
	if !ok {
		return out, nil
	}

	n, err := s.notifications.Notify(report.UserID, report.ID, kind, ReportSummary{
		Type:    report.Type,
		Address: report.Location.Address,
	})
	if err != nil {
		log.Printf("[Triage] notification for %s skipped: %v", report.ID, err)
		return out, nil
	}
	out.Notification = n

	owner, found := s.accounts.Lookup(report.UserID)
	if !found || s.mail == nil {
		return out, nil
	}
	email := s.mail.SendStatusNotification(owner.Email, owner.Name, n)
	out.Email = &email
	return out, nil
}

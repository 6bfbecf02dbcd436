package services

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"smartrubbish/internal/apperrors"
	"smartrubbish/internal/models"
	"smartrubbish/internal/storage"
	"smartrubbish/internal/utils"
)

const (
	DuplicateWindow   = 5 * time.Minute
	DuplicateRadius   = 10.0 // meters
	MinDescriptionLen = 10

	BaselineMembers  = 5000
	BaselineReports  = 25000
	SatisfactionRate = 90
)

type SubmitInput struct {
	UserID      string
	Type        string
	Description string
	Photo       string
	Location    models.Location
}

// Submission is the outcome of a successful submit. Award is nil when the
// owning member could not be credited.
type Submission struct {
	Report *models.Report `json:"report"`
	Award  *PointAward    `json:"award,omitempty"`
}

type Stats struct {
	TotalMembers int `json:"totalMembers"`
	TotalReports int `json:"totalReports"`
	Satisfaction int `json:"satisfaction"`
}

type ReportService struct {
	store    *storage.Adapter
	accounts *AccountService
	geocoder Geocoder
	now      func() time.Time
}

// NewReportService wires the ledger. geocoder may be nil, in which case blank
// addresses are stored as coordinates.
func NewReportService(store *storage.Adapter, accounts *AccountService, geocoder Geocoder) *ReportService {
	return &ReportService{store: store, accounts: accounts, geocoder: geocoder, now: time.Now}
}

func (s *ReportService) Submit(ctx context.Context, in SubmitInput) (*Submission, error) {
	if strings.TrimSpace(in.UserID) == "" {
		return nil, apperrors.New(apperrors.CodeInvalidUser, "Invalid user ID")
	}

	reportType := utils.Sanitize(in.Type)
	if reportType == "" {
		return nil, apperrors.New(apperrors.CodeInvalidType, "Report type is required")
	}

	description := utils.Sanitize(in.Description)
	if utf8.RuneCountInString(description) < MinDescriptionLen {
		return nil, apperrors.New(apperrors.CodeInvalidDescription, "Description must be at least 10 characters")
	}

	lat, lng := in.Location.Lat, in.Location.Lng
	if !utils.IsValidCoordinates(lat, lng) {
		return nil, apperrors.New(apperrors.CodeInvalidLocation, "Invalid location coordinates")
	}

	reports, ok, err := storage.LoadCollection[models.Report](s.store, storage.Reports)
	if !ok {
		return nil, apperrors.New(apperrors.CodeStorage, "Unable to access storage")
	}
	if err != nil {
		log.Printf("[Storage Error %s]: Failed to save report", apperrors.CodeSaveReport)
		return nil, apperrors.New(apperrors.CodeSaveReport, "An unexpected error occurred while saving the report")
	}

	now := s.now().UTC()
	cutoff := now.Add(-DuplicateWindow)
	for _, r := range reports {
		if r.UserID != in.UserID || r.Timestamp.Before(cutoff) {
			continue
		}
		if utils.PlanarDistance(r.Location.Lat, r.Location.Lng, lat, lng) < DuplicateRadius {
			return nil, apperrors.New(apperrors.CodeDuplicateReport, "You recently submitted a report for this location")
		}
	}

	address := utils.Sanitize(in.Location.Address)
	if address == "" {
		if s.geocoder != nil {
			address = utils.Sanitize(s.geocoder.Reverse(ctx, lat, lng))
		} else {
			address = CoordinateAddress(lat, lng)
		}
	}

	report := models.Report{
		ID:          utils.NewID("report"),
		UserID:      in.UserID,
		Type:        reportType,
		Description: description,
		Photo:       in.Photo,
		Location: models.Location{
			Lat:     lat,
			Lng:     lng,
			Address: address,
		},
		Timestamp: now,
		Status:    models.StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	reports = append(reports, report)

	if !storage.SaveCollection(s.store, storage.Reports, reports) {
		return nil, apperrors.New(apperrors.CodeSave, "Failed to save report")
	}

	sub := &Submission{Report: &report}
	award, err := s.accounts.AwardPoints(in.UserID, PointsReportSubmitted, ActionReportSubmitted, report.ID)
	if err != nil {
		log.Printf("[Points] award for report %s skipped: %v", report.ID, err)
	}
	sub.Award = award
	return sub, nil
}

// UpdateStatus advances a report along pending -> reviewed -> resolved.
// An unknown report id is a no-op and returns nil, nil.
func (s *ReportService) UpdateStatus(reportID string, status models.ReportStatus) (*models.Report, error) {
	if !status.Valid() {
		return nil, apperrors.New(apperrors.CodeInvalidStatus, fmt.Sprintf("Invalid report status %q", status))
	}

	reports, ok, err := storage.LoadCollection[models.Report](s.store, storage.Reports)
	if !ok || err != nil {
		return nil, apperrors.New(apperrors.CodeStorage, "Unable to access storage")
	}

	idx := -1
	for i := range reports {
		if reports[i].ID == reportID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, nil
	}

	current := reports[idx].Status
	if !current.CanAdvanceTo(status) {
		return nil, apperrors.New(apperrors.CodeInvalidTransition,
			fmt.Sprintf("Cannot change report status from %s to %s", current, status))
	}

	reports[idx].Status = status
	reports[idx].UpdatedAt = s.now().UTC()
	if !storage.SaveCollection(s.store, storage.Reports, reports) {
		return nil, apperrors.New(apperrors.CodeSave, "Failed to update report")
	}

	updated := reports[idx]
	return &updated, nil
}

// ListAll returns every report in submission order. Unreadable storage yields an empty list.
func (s *ReportService) ListAll() []models.Report {
	reports, ok, err := storage.LoadCollection[models.Report](s.store, storage.Reports)
	if !ok || err != nil {
		return []models.Report{}
	}
	return reports
}

// ListByUser returns a member's reports, newest first.
func (s *ReportService) ListByUser(userID string) []models.Report {
	out := make([]models.Report, 0)
	for _, r := range s.ListAll() {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out
}

func (s *ReportService) Get(reportID string) (*models.Report, bool) {
	for _, r := range s.ListAll() {
		if r.ID == reportID {
			return &r, true
		}
	}
	return nil, false
}

// Stats layers the real counts on a fixed baseline.
func (s *ReportService) Stats() Stats {
	stats := Stats{
		TotalMembers: BaselineMembers,
		TotalReports: BaselineReports,
		Satisfaction: SatisfactionRate,
	}

	users, okUsers, errUsers := storage.LoadCollection[models.StoredUser](s.store, storage.Users)
	reports, okReports, errReports := storage.LoadCollection[models.Report](s.store, storage.Reports)
	if !okUsers || !okReports || errUsers != nil || errReports != nil {
		return stats
	}

	stats.TotalMembers += len(users)
	stats.TotalReports += len(reports)
	return stats
}

package services

import (
	"context"
	"sync"
	"time"

	"smartrubbish/internal/config"
	"smartrubbish/internal/models"
	"smartrubbish/internal/storage"
)

// clock is a settable time source shared by the services under test.
type clock struct {
	t time.Time
}

func (c *clock) now() time.Time          { return c.t }
func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

type testEnv struct {
	kv            *storage.MemoryKV
	store         *storage.Adapter
	clock         *clock
	accounts      *AccountService
	reports       *ReportService
	notifications *NotificationService
	mail          *MailService
	triage        *TriageService
	weekly        *WeeklyReportGenerator
}

// staticGeocoder returns a fixed address.
type staticGeocoder string

func (g staticGeocoder) Reverse(context.Context, float64, float64) string { return string(g) }

func newTestEnv(start time.Time) *testEnv {
	c := &clock{t: start}
	kv := storage.NewMemoryKV(0)
	store := storage.NewAdapter(kv, "", storage.WithClock(c.now))

	accounts := NewAccountService(store, config.DefaultAdmins())
	accounts.now = c.now
	reports := NewReportService(store, accounts, nil)
	reports.now = c.now
	notifications := NewNotificationService(store)
	notifications.now = c.now
	mail := NewMailService()
	mail.now = c.now

	loc, err := time.LoadLocation("Australia/Sydney")
	if err != nil {
		loc = time.UTC
	}
	weekly := NewWeeklyReportGenerator(reports, accounts, loc)
	weekly.now = c.now

	return &testEnv{
		kv:            kv,
		store:         store,
		clock:         c,
		accounts:      accounts,
		reports:       reports,
		notifications: notifications,
		mail:          mail,
		triage:        NewTriageService(reports, accounts, notifications, mail),
		weekly:        weekly,
	}
}

// MemorySession is a Session kept in process memory.
type MemorySession struct {
	mu   sync.Mutex
	user *models.User
}

func (s *MemorySession) CurrentUser() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *MemorySession) SetCurrentUser(u *models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u == nil {
		s.user = nil
		return
	}
	cp := *u
	s.user = &cp
}

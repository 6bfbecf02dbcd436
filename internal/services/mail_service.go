package services

import (
	"fmt"
	"log"
	"sync"
	"time"

	"smartrubbish/internal/models"
	"smartrubbish/internal/utils"
)

// Email is one recorded delivery attempt.
type Email struct {
	To      string    `json:"to"`
	Subject string    `json:"subject"`
	Body    string    `json:"body"` // rendered HTML
	SentAt  time.Time `json:"sentAt"`
}

// MailService records outbound email without delivering it.
type MailService struct {
	mu   sync.Mutex
	sent []Email
	now  func() time.Time
}

func NewMailService() *MailService {
	log.Println("⚠️ MailService in stub mode: emails are recorded, not delivered.")
	return &MailService{now: time.Now}
}

// Send renders the markdown body and records the attempt.
func (s *MailService) Send(to, subject, markdown string) Email {
	e := Email{
		To:      to,
		Subject: subject,
		Body:    utils.EmailHTML(markdown),
		SentAt:  s.now().UTC(),
	}

	s.mu.Lock()
	s.sent = append(s.sent, e)
	s.mu.Unlock()

	log.Printf("[Mail] 📧 To: %s | Subject: %s", to, subject)
	return e
}

// SendStatusNotification mirrors an in-app notification to the member's inbox.
func (s *MailService) SendStatusNotification(to, name string, n *models.Notification) Email {
	body := fmt.Sprintf("# %s\n\nHi %s,\n\n%s\n\n> Reference: %s\n\nSydney City Council, Smart Rubbish Detection",
		n.Title, name, n.Message, n.ReportID)
	return s.Send(to, n.Title, body)
}

// Sent returns a copy of every recorded email.
func (s *MailService) Sent() []Email {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Email, len(s.sent))
	copy(out, s.sent)
	return out
}

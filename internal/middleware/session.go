package middleware

import (
	"encoding/json"
	"log"

	"smartrubbish/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	SessionUserID      = "user_id"
	SessionCurrentUser = "current_user"
)

// CookieSession adapts the gin cookie session to services.Session.
type CookieSession struct {
	s sessions.Session
}

func NewCookieSession(c *gin.Context) *CookieSession {
	return &CookieSession{s: sessions.Default(c)}
}

func (cs *CookieSession) UserID() string {
	id, _ := cs.s.Get(SessionUserID).(string)
	return id
}

func (cs *CookieSession) CurrentUser() *models.User {
	raw, ok := cs.s.Get(SessionCurrentUser).(string)
	if !ok || raw == "" {
		return nil
	}
	var u models.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return nil
	}
	return &u
}

func (cs *CookieSession) SetCurrentUser(u *models.User) {
	if u == nil {
		cs.Clear()
		return
	}
	data, err := json.Marshal(u)
	if err != nil {
		log.Printf("[Session] encode user %s: %v", u.ID, err)
		return
	}
	cs.s.Set(SessionUserID, u.ID)
	cs.s.Set(SessionCurrentUser, string(data))
	if err := cs.s.Save(); err != nil {
		log.Printf("[Session] save failed: %v", err)
	}
}

func (cs *CookieSession) Clear() {
	cs.s.Clear()
	if err := cs.s.Save(); err != nil {
		log.Printf("[Session] save failed: %v", err)
	}
}

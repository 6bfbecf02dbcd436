package services

import "smartrubbish/internal/models"

// Session holds the signed-in user for one client.
type Session interface {
	CurrentUser() *models.User
	SetCurrentUser(u *models.User)
}

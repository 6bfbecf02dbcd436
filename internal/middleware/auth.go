package middleware

import (
	"net/http"
	"strings"

	"smartrubbish/internal/apperrors"
	"smartrubbish/internal/models"
	"smartrubbish/internal/services"
	"smartrubbish/internal/utils"

	"github.com/gin-gonic/gin"
)

const CurrentUserKey = "user"

// LoadUser resolves the session's user id against the directory or the admin table.
func LoadUser(accounts *services.AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := NewCookieSession(c).UserID()
		if userID != "" {
			var user *models.User
			var ok bool
			if strings.HasPrefix(userID, "admin_") {
				user, ok = accounts.LookupAdmin(userID)
			} else {
				user, ok = accounts.Lookup(userID)
			}
			if ok {
				c.Set(CurrentUserKey, user)
			}
		}
		c.Next()
	}
}

// CurrentUser returns the user set by LoadUser, or nil.
func CurrentUser(c *gin.Context) *models.User {
	if v, ok := c.Get(CurrentUserKey); ok {
		if u, ok := v.(*models.User); ok {
			return u
		}
	}
	return nil
}

// AuthRequired ensures a user is logged in
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUser(c) == nil {
			utils.RespondError(c, http.StatusUnauthorized, apperrors.CodeInvalidUser, "Please log in first")
			return
		}
		c.Next()
	}
}

// AdminRequired runs after AuthRequired.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		u := CurrentUser(c)
		if u == nil || !u.IsAdmin() {
			utils.RespondError(c, http.StatusForbidden, "", "Admin access required")
			return
		}
		c.Next()
	}
}

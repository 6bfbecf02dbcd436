package handlers

import (
	"net/http"

	"smartrubbish/internal/middleware"
	"smartrubbish/internal/models"
	"smartrubbish/internal/services"
	"smartrubbish/internal/utils"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	accounts      *services.AccountService
	notifications *services.NotificationService
}

func NewAuthHandler(accounts *services.AccountService, notifications *services.NotificationService) *AuthHandler {
	return &AuthHandler{accounts: accounts, notifications: notifications}
}

type registerRequest struct {
	Email    string `json:"email" conform:"trim"`
	Password string `json:"password"`
	Name     string `json:"name" conform:"trim"`
}

type loginRequest struct {
	Email    string `json:"email" conform:"trim"`
	Password string `json:"password"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.accounts.Register(req.Email, req.Password, req.Name)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	middleware.NewCookieSession(c).SetCurrentUser(user)
	utils.RespondStatus(c, http.StatusCreated, user, "Registration successful")
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.accounts.Login(req.Email, req.Password)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	middleware.NewCookieSession(c).SetCurrentUser(user)
	utils.RespondSuccess(c, user, "Login successful")
}

func (h *AuthHandler) AdminLogin(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.accounts.LoginAdmin(req.Email, req.Password)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	middleware.NewCookieSession(c).SetCurrentUser(user)
	utils.RespondSuccess(c, user, "Admin login successful")
}

func (h *AuthHandler) Logout(c *gin.Context) {
	middleware.NewCookieSession(c).Clear()
	utils.RespondSuccess(c, nil, "Logged out")
}

// Me returns the signed-in user with credits recomputed from eco-points
// and the unread notification count.
func (h *AuthHandler) Me(c *gin.Context) {
	user := currentUser(c)
	if user.IsAdmin() {
		utils.RespondSuccess(c, h.meResponse(user), "")
		return
	}

	synced, err := h.accounts.SyncCredits(user.ID, middleware.NewCookieSession(c))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	if synced == nil {
		synced = user
	}
	utils.RespondSuccess(c, h.meResponse(synced), "")
}

type me struct {
	*models.User
	Tier        string `json:"tier"`
	TierIcon    string `json:"tierIcon"`
	UnreadCount int    `json:"unreadCount"`
}

func (h *AuthHandler) meResponse(u *models.User) me {
	name, icon := utils.RewardTier(u.EcoPoints)
	return me{User: u, Tier: name, TierIcon: icon, UnreadCount: h.notifications.UnreadCount(u.ID)}
}

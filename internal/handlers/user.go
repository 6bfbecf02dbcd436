package handlers

import (
	"smartrubbish/internal/services"
	"smartrubbish/internal/utils"

	"github.com/gin-gonic/gin"
)

const pointLogLimit = 100

type UserHandler struct {
	accounts *services.AccountService
}

func NewUserHandler(accounts *services.AccountService) *UserHandler {
	return &UserHandler{accounts: accounts}
}

// PointLogs - eco-point ledger with the member's balance and tier
func (h *UserHandler) PointLogs(c *gin.Context) {
	user := currentUser(c)
	if fresh, ok := h.accounts.Lookup(user.ID); ok {
		user = fresh
	}
	tier, icon := utils.RewardTier(user.EcoPoints)

	logs := h.accounts.ListPointLogs(user.ID)
	if limit := utils.StringToInt(c.Query("limit"), pointLogLimit); len(logs) > limit {
		logs = logs[:limit]
	}

	utils.RespondSuccess(c, gin.H{
		"ecoPoints": user.EcoPoints,
		"credits":   user.Credits,
		"tier":      tier,
		"tierIcon":  icon,
		"logs":      logs,
	}, "")
}

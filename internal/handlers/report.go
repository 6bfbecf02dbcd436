package handlers

import (
	"log"
	"math"
	"net/http"

	"smartrubbish/internal/middleware"
	"smartrubbish/internal/models"
	"smartrubbish/internal/services"
	"smartrubbish/internal/utils"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	reports  *services.ReportService
	accounts *services.AccountService
}

func NewReportHandler(reports *services.ReportService, accounts *services.AccountService) *ReportHandler {
	return &ReportHandler{reports: reports, accounts: accounts}
}

type locationRequest struct {
	Lat     *float64 `json:"lat"`
	Lng     *float64 `json:"lng"`
	Address string   `json:"address" conform:"trim"`
}

type createReportRequest struct {
	Type        string          `json:"type" conform:"trim"`
	Description string          `json:"description"`
	Photo       string          `json:"photo"`
	Location    locationRequest `json:"location"`
}

// coordinate maps a missing value to NaN so the ledger rejects it in order.
func coordinate(v *float64) float64 {
	if v == nil {
		return math.NaN()
	}
	return *v
}

func (h *ReportHandler) Create(c *gin.Context) {
	user := currentUser(c)

	var req createReportRequest
	if !bindJSON(c, &req) {
		return
	}

	sub, err := h.reports.Submit(c.Request.Context(), services.SubmitInput{
		UserID:      user.ID,
		Type:        req.Type,
		Description: req.Description,
		Photo:       req.Photo,
		Location: models.Location{
			Lat:     coordinate(req.Location.Lat),
			Lng:     coordinate(req.Location.Lng),
			Address: req.Location.Address,
		},
	})
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	if sub.Award != nil {
		if _, err := h.accounts.SyncCredits(user.ID, middleware.NewCookieSession(c)); err != nil {
			log.Printf("[Points] session sync for %s skipped: %v", user.ID, err)
		}
	}
	utils.RespondStatus(c, http.StatusCreated, sub, "Report submitted")
}

func (h *ReportHandler) List(c *gin.Context) {
	utils.RespondSuccess(c, h.reports.ListAll(), "")
}

func (h *ReportHandler) Mine(c *gin.Context) {
	utils.RespondSuccess(c, h.reports.ListByUser(currentUser(c).ID), "")
}

func (h *ReportHandler) Detail(c *gin.Context) {
	report, ok := h.reports.Get(c.Param("id"))
	if !ok {
		notFound(c, "Report not found")
		return
	}
	utils.RespondSuccess(c, report, "")
}

func (h *ReportHandler) Stats(c *gin.Context) {
	utils.RespondSuccess(c, h.reports.Stats(), "")
}

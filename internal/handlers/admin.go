package handlers

import (
	"fmt"
	"log"
	"net/http"

	"smartrubbish/internal/models"
	"smartrubbish/internal/sentry"
	"smartrubbish/internal/services"
	"smartrubbish/internal/utils"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	accounts *services.AccountService
	triage   *services.TriageService
	weekly   *services.WeeklyReportGenerator
}

func NewAdminHandler(accounts *services.AccountService, triage *services.TriageService, weekly *services.WeeklyReportGenerator) *AdminHandler {
	return &AdminHandler{accounts: accounts, triage: triage, weekly: weekly}
}

func (h *AdminHandler) Users(c *gin.Context) {
	utils.RespondSuccess(c, h.accounts.ListAll(), "")
}

type statusRequest struct {
	Status string `json:"status" conform:"trim,lower"`
}

// UpdateStatus advances a report and notifies its owner.
func (h *AdminHandler) UpdateStatus(c *gin.Context) {
	var req statusRequest
	if !bindJSON(c, &req) {
		return
	}

	out, err := h.triage.Advance(c.Param("id"), models.ReportStatus(req.Status))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	if out == nil {
		notFound(c, "Report not found")
		return
	}
	log.Printf("[Admin] %s set report %s to %s", currentUser(c).Email, out.Report.ID, out.Report.Status)
	utils.RespondSuccess(c, out, "Report status updated")
}

func (h *AdminHandler) WeeklyReport(c *gin.Context) {
	utils.RespondSuccess(c, h.weekly.Generate(), "")
}

// DownloadWeeklyReport serves the export as an attachment.
func (h *AdminHandler) DownloadWeeklyReport(c *gin.Context) {
	format := c.DefaultQuery("format", "json")
	report := h.weekly.Generate()

	var (
		data        []byte
		err         error
		contentType string
	)
	switch format {
	case "json":
		data, err = report.JSON()
		contentType = "application/json"
	case "csv":
		data, err = report.CSV()
		contentType = "text/csv"
	default:
		utils.RespondError(c, http.StatusBadRequest, "", "format must be json or csv")
		return
	}
	if err != nil {
		sentry.CaptureErrorWithContext(c, err, "[Weekly Report] export "+format+" failed")
		utils.RespondError(c, http.StatusInternalServerError, "", "Failed to export weekly report")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, h.weekly.FileName(format)))
	c.Data(http.StatusOK, contentType, data)
}

func (h *AdminHandler) Schedule(c *gin.Context) {
	utils.RespondSuccess(c, gin.H{
		"nextReportDate": h.weekly.NextReportDate(),
		"recipients":     h.accounts.AdminEmails(),
	}, "")
}

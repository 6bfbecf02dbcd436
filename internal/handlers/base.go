package handlers

import (
	"net/http"

	"smartrubbish/internal/middleware"
	"smartrubbish/internal/models"
	"smartrubbish/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/leebenson/conform"
)

// bindJSON decodes the body into req and trims its tagged string fields.
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "", "Invalid request body")
		return false
	}
	if err := conform.Strings(req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "", "Invalid request body")
		return false
	}
	return true
}

func currentUser(c *gin.Context) *models.User {
	return middleware.CurrentUser(c)
}

func notFound(c *gin.Context, message string) {
	utils.RespondError(c, http.StatusNotFound, "", message)
}

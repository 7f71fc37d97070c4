package controllers

import (
	"fmt"
	"net/http"

	"fitprofile/internal/models"
	"fitprofile/internal/profile"
	"fitprofile/internal/repository"

	"github.com/gin-gonic/gin"
)

type AuthorizationController struct {
	repo    repository.AuthorizationRepository
	service *profile.Service
}

func NewAuthorizationController(repo repository.AuthorizationRepository, service *profile.Service) *AuthorizationController {
	return &AuthorizationController{repo: repo, service: service}
}

// SetAuthorization godoc
// @Summary Answer a read-access request
// @Description Grant or deny read access to sample types
// @Tags authorizations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param authorization body models.SetAuthorizationRequest true "Types and answer"
// @Success 200 {object} map[string]interface{} "Authorization saved successfully"
// @Failure 400 {object} map[string]interface{} "Invalid request data"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Failure 500 {object} map[string]interface{} "Failed to save authorization"
// @Router /authorizations [post]
func (ac *AuthorizationController) SetAuthorization(c *gin.Context) {
	var req models.SetAuthorizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request data",
			"error":   err.Error(),
		})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if !req.Status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request data",
			"error":   "status must be granted or denied",
		})
		return
	}
	for _, t := range req.Types {
		if !t.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{
				"status":  "error",
				"message": "Invalid request data",
				"error":   fmt.Sprintf("unknown sample type %q", t),
			})
			return
		}
	}

	if err := ac.repo.Set(c.Request.Context(), userID, req.Types, req.Status); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to save authorization",
			"error":   err.Error(),
		})
		return
	}

	ac.service.Invalidate(c.Request.Context(), userID)
	ac.respondWithAuthorizations(c, userID, "Authorization saved successfully")
}

// ListAuthorizations godoc
// @Summary List authorizations
// @Tags authorizations
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Authorizations retrieved successfully"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Failure 500 {object} map[string]interface{} "Failed to retrieve authorizations"
// @Router /authorizations [get]
func (ac *AuthorizationController) ListAuthorizations(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	ac.respondWithAuthorizations(c, userID, "Authorizations retrieved successfully")
}

func (ac *AuthorizationController) respondWithAuthorizations(c *gin.Context, userID uint, message string) {
	auths, err := ac.repo.FindByUserID(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to retrieve authorizations",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": message,
		"data":    auths,
	})
}

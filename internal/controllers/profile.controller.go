package controllers

import (
	"errors"
	"net/http"

	"fitprofile/internal/healthstore"
	"fitprofile/internal/profile"

	"github.com/gin-gonic/gin"
)

type ProfileController struct {
	service      *profile.Service
	defaultUnits profile.Units
}

func NewProfileController(service *profile.Service, defaultUnits profile.Units) *ProfileController {
	return &ProfileController{service: service, defaultUnits: defaultUnits}
}

// GetProfile godoc
// @Summary Get profile
// @Description Age, height, weight and BMI of the authenticated user as list rows
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Param units query string false "metric or imperial"
// @Success 200 {object} map[string]interface{} "Profile retrieved successfully"
// @Failure 400 {object} map[string]interface{} "Invalid unit system"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Failure 403 {object} map[string]interface{} "Health data access denied"
// @Router /profile [get]
func (pc *ProfileController) GetProfile(c *gin.Context) {
	userID, units, ok := pc.parseRequest(c)
	if !ok {
		return
	}
	pc.respond(c, pc.service.Current(c.Request.Context(), userID), units, "Profile retrieved successfully")
}

// RefreshProfile godoc
// @Summary Refresh profile
// @Description Re-read the health store and rebuild the profile
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Param units query string false "metric or imperial"
// @Success 200 {object} map[string]interface{} "Profile refreshed successfully"
// @Failure 400 {object} map[string]interface{} "Invalid unit system"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Failure 403 {object} map[string]interface{} "Health data access denied"
// @Router /profile/refresh [post]
func (pc *ProfileController) RefreshProfile(c *gin.Context) {
	userID, units, ok := pc.parseRequest(c)
	if !ok {
		return
	}
	pc.respond(c, pc.service.Refresh(c.Request.Context(), userID), units, "Profile refreshed successfully")
}

func (pc *ProfileController) parseRequest(c *gin.Context) (uint, profile.Units, bool) {
	userID, ok := currentUserID(c)
	if !ok {
		return 0, "", false
	}

	units := pc.defaultUnits
	if q := c.Query("units"); q != "" {
		parsed, err := profile.ParseUnits(q)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"status":  "error",
				"message": "Invalid unit system",
				"error":   err.Error(),
			})
			return 0, "", false
		}
		units = parsed
	}
	return userID, units, true
}

func (pc *ProfileController) respond(c *gin.Context, st profile.State, units profile.Units, message string) {
	data := gin.H{
		"state": st,
		"rows":  profile.Render(st, units),
		"units": units,
	}

	if err := st.Err(); err != nil && st.Status() == profile.StatusUnavailable &&
		(errors.Is(err, healthstore.ErrAuthorizationDenied) || errors.Is(err, profile.ErrNotAuthorized)) {
		c.JSON(http.StatusForbidden, gin.H{
			"status":  "error",
			"message": "Health data access denied",
			"error":   err.Error(),
			"data":    data,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": message,
		"data":    data,
	})
}

func currentUserID(c *gin.Context) (uint, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"status":  "error",
			"message": "Unauthorized",
			"error":   "User ID not found in token",
		})
		return 0, false
	}
	return userID.(uint), true
}

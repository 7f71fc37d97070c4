package controllers

import (
	"net/http"
	"strconv"
	"time"

	"fitprofile/internal/healthstore"
	"fitprofile/internal/metrics"
	"fitprofile/internal/models"
	"fitprofile/internal/profile"
	"fitprofile/internal/repository"

	"github.com/gin-gonic/gin"
)

const defaultSampleLimit = 50

type SampleController struct {
	samples         repository.SampleRepository
	characteristics repository.CharacteristicRepository
	service         *profile.Service
}

func NewSampleController(
	samples repository.SampleRepository,
	characteristics repository.CharacteristicRepository,
	service *profile.Service,
) *SampleController {
	return &SampleController{
		samples:         samples,
		characteristics: characteristics,
		service:         service,
	}
}

// RecordSample godoc
// @Summary Record a sample
// @Description Store a height or body mass reading; values are converted to meters or kilograms
// @Tags samples
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param sample body models.RecordSampleRequest true "Sample data"
// @Success 201 {object} map[string]interface{} "Sample recorded successfully"
// @Failure 400 {object} map[string]interface{} "Invalid request data"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Failure 500 {object} map[string]interface{} "Failed to record sample"
// @Router /samples [post]
func (sc *SampleController) RecordSample(c *gin.Context) {
	var req models.RecordSampleRequest
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

	if !req.Type.Quantity() {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request data",
			"error":   "type must be height or body_mass",
		})
		return
	}
	if *req.Value < 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request data",
			"error":   "value must not be negative",
		})
		return
	}

	value, err := healthstore.ToCanonical(req.Type, *req.Value, req.Unit)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request data",
			"error":   err.Error(),
		})
		return
	}

	sample := models.HealthSample{
		UserID: userID,
		Type:   req.Type,
		Value:  value,
		Unit:   req.Type.CanonicalUnit(),
	}
	if req.RecordedAt != nil {
		sample.RecordedAt = req.RecordedAt.UTC()
	}

	if err := sc.samples.Create(c.Request.Context(), &sample); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to record sample",
			"error":   err.Error(),
		})
		return
	}

	metrics.SamplesRecorded.WithLabelValues(string(sample.Type)).Inc()
	sc.service.Invalidate(c.Request.Context(), userID)

	c.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"message": "Sample recorded successfully",
		"data":    sample,
	})
}

// ListSamples godoc
// @Summary List samples
// @Description Most recent samples of one type, newest first
// @Tags samples
// @Produce json
// @Security BearerAuth
// @Param type path string true "height or body_mass"
// @Param limit query int false "Maximum number of samples"
// @Success 200 {object} map[string]interface{} "Samples retrieved successfully"
// @Failure 400 {object} map[string]interface{} "Invalid sample type"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Failure 500 {object} map[string]interface{} "Failed to retrieve samples"
// @Router /samples/{type} [get]
func (sc *SampleController) ListSamples(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	sampleType := models.SampleType(c.Param("type"))
	if !sampleType.Quantity() {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid sample type",
			"error":   "type must be height or body_mass",
		})
		return
	}

	limit := defaultSampleLimit
	if q := c.Query("limit"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"status":  "error",
				"message": "Invalid limit",
				"error":   "limit must be a positive integer",
			})
			return
		}
		limit = n
	}

	samples, err := sc.samples.ListByType(c.Request.Context(), userID, sampleType, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to retrieve samples",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Samples retrieved successfully",
		"data":    samples,
	})
}

// SetDateOfBirth godoc
// @Summary Set date of birth
// @Description Store the date of birth the profile age is derived from
// @Tags samples
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param characteristic body models.SetDateOfBirthRequest true "Date of birth (YYYY-MM-DD)"
// @Success 200 {object} map[string]interface{} "Date of birth saved successfully"
// @Failure 400 {object} map[string]interface{} "Invalid request data"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Failure 500 {object} map[string]interface{} "Failed to save date of birth"
// @Router /characteristics [put]
func (sc *SampleController) SetDateOfBirth(c *gin.Context) {
	var req models.SetDateOfBirthRequest
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

	dob, err := time.Parse("2006-01-02", req.DateOfBirth)
	if err != nil || dob.After(time.Now()) {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request data",
			"error":   "Date must be a past date in YYYY-MM-DD format",
		})
		return
	}

	characteristic := models.Characteristic{UserID: userID, DateOfBirth: dob}
	if err := sc.characteristics.Upsert(c.Request.Context(), &characteristic); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to save date of birth",
			"error":   err.Error(),
		})
		return
	}

	sc.service.Invalidate(c.Request.Context(), userID)

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Date of birth saved successfully",
		"data":    characteristic,
	})
}

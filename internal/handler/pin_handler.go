package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"relief_map/internal/middleware"
	"relief_map/internal/model"
	"relief_map/internal/service"

	"github.com/gin-gonic/gin"
)

// PinHandler handles pin related requests
type PinHandler struct {
	service service.PinService
}

// NewPinHandler creates a new PinHandler
func NewPinHandler(s service.PinService) *PinHandler {
	return &PinHandler{service: s}
}

func (h *PinHandler) CreatePin(c *gin.Context) {
	actor := middleware.AuthUser(c)
	if actor == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}

	var req model.CreatePinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields: " + err.Error()})
		return
	}

	pin, alerts, err := h.service.CreatePin(c.Request.Context(), actor.ID, req)
	if err != nil {
		log.Printf("Error creating pin: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create pin"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":         pin.ID,
		"status":     "created",
		"alertsSent": alerts,
	})
}

// ListPins serves the pin map. Optional query parameters:
// lat, lng, radius (meters) narrow the listing to a circle;
// type and category filter by exact value.
func (h *PinHandler) ListPins(c *gin.Context) {
	var filters model.PinFilters

	latStr, lngStr, radiusStr := c.Query("lat"), c.Query("lng"), c.Query("radius")
	if latStr != "" && lngStr != "" && radiusStr != "" {
		lat, errLat := strconv.ParseFloat(latStr, 64)
		lng, errLng := strconv.ParseFloat(lngStr, 64)
		radius, errRadius := strconv.ParseFloat(radiusStr, 64)
		if errLat != nil || errLng != nil || errRadius != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "lat, lng and radius must be numeric"})
			return
		}
		filters.Lat, filters.Lng, filters.Radius = &lat, &lng, &radius
	}
	if typeParam := c.Query("type"); typeParam != "" {
		filters.Type = &typeParam
	}
	if categoryParam := c.Query("category"); categoryParam != "" {
		filters.Category = &categoryParam
	}

	pins, err := h.service.ListPins(c.Request.Context(), filters)
	if err != nil {
		log.Printf("Error listing pins: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve pins"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"pins": pins})
}

func (h *PinHandler) GetPin(c *gin.Context) {
	pin, err := h.service.GetPin(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrPinNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Pin not found"})
			return
		}
		log.Printf("Error getting pin: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve pin"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"pin": pin})
}

func (h *PinHandler) SetVolunteerCenter(c *gin.Context) {
	actor := middleware.AuthUser(c)
	if actor == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}

	var req model.VolunteerCenterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing coordinates"})
		return
	}

	if err := h.service.SetVolunteerCenter(c.Request.Context(), actor, *req.Lat, *req.Lng); err != nil {
		if errors.Is(err, service.ErrNotVolunteer) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Only volunteers can set center location"})
			return
		}
		log.Printf("Error setting volunteer center: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update center"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "center updated"})
}

func (h *PinHandler) ToggleVerification(c *gin.Context) {
	id := c.Param("id")
	status, err := h.service.ToggleVerification(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrPinNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Pin not found"})
			return
		}
		log.Printf("Error toggling pin verification: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update pin"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id, "status": status})
}

// RegisterPinRoutes registers pin routes
func (h *PinHandler) RegisterPinRoutes(rg *gin.RouterGroup, authMW, adminMW gin.HandlerFunc) {
	pinGroup := rg.Group("/pins")
	{
		pinGroup.GET("", h.ListPins)
		pinGroup.POST("", authMW, h.CreatePin)
		pinGroup.POST("/volunteer-center", authMW, h.SetVolunteerCenter)
		pinGroup.GET("/:id", h.GetPin)
		pinGroup.POST("/:id/verify", authMW, adminMW, h.ToggleVerification)
	}
}

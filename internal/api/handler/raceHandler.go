package handler

import (
	"net/http"
	"strconv"

	"racedebrief/internal/api/dto"
	"racedebrief/internal/api/service"

	"github.com/gin-gonic/gin"
)

type RaceHandler struct {
	raceService service.RaceService
}

func NewRaceHandler(raceService service.RaceService) *RaceHandler {
	return &RaceHandler{raceService: raceService}
}

// RegisterRoutes registers the public catalog reads and the admin-only
// catalog mutations.
func (h *RaceHandler) RegisterRoutes(api *gin.RouterGroup, admin *gin.RouterGroup) {
	races := api.Group("/races")
	{
		races.GET("", h.List)
		races.GET("/:race_id", h.Get)
	}

	adminRaces := admin.Group("/races")
	{
		adminRaces.POST("", h.Create)
		adminRaces.PUT("/:race_id", h.Update)
		adminRaces.DELETE("/:race_id", h.Delete)
	}
}

// List returns the full race calendar
// GET /api/races
func (h *RaceHandler) List(c *gin.Context) {
	races, err := h.raceService.ListRaces()
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, races)
}

// Get returns a single race
// GET /api/races/:race_id
func (h *RaceHandler) Get(c *gin.Context) {
	raceID, err := strconv.ParseInt(c.Param("race_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid race ID"})
		return
	}

	race, err := h.raceService.GetRace(raceID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, race)
}

// Create adds a race to the calendar
// POST /api/admin/races
func (h *RaceHandler) Create(c *gin.Context) {
	var req dto.CreateRaceDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	race, err := h.raceService.CreateRace(req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, race)
}

// Update patches a race's descriptive fields
// PUT /api/admin/races/:race_id
func (h *RaceHandler) Update(c *gin.Context) {
	raceID, err := strconv.ParseInt(c.Param("race_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid race ID"})
		return
	}

	var patch dto.UpdateRaceDTO
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	race, err := h.raceService.UpdateRace(raceID, patch)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, race)
}

// Delete removes a race and everything reviewed on it
// DELETE /api/admin/races/:race_id
func (h *RaceHandler) Delete(c *gin.Context) {
	raceID, err := strconv.ParseInt(c.Param("race_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid race ID"})
		return
	}

	if err := h.raceService.DeleteRace(raceID); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Race deleted successfully"})
}

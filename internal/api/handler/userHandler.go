package handler

import (
	"net/http"

	"racedebrief/internal/api/dto"
	"racedebrief/internal/api/service"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// RegisterRoutes: profile edits for signed-in users, full account
// management for the admin dashboard.
func (h *UserHandler) RegisterRoutes(api *gin.RouterGroup, admin *gin.RouterGroup, authMW gin.HandlerFunc) {
	api.PUT("/users/:user_id", authMW, h.Update)

	adminUsers := admin.Group("/users")
	{
		adminUsers.GET("", h.List)
		adminUsers.GET("/:user_id", h.Get)
		adminUsers.PUT("/:user_id", h.Update)
		adminUsers.DELETE("/:user_id", h.Delete)
	}
}

// List returns all accounts (admin dashboard)
// GET /api/admin/users
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userService.ListUsers()
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// Get returns one account
// GET /api/admin/users/:user_id
func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.userService.GetUser(c.Param("user_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// Update patches an account. The service enforces self-or-admin and the
// admin-only role change.
// PUT /api/users/:user_id, PUT /api/admin/users/:user_id
func (h *UserHandler) Update(c *gin.Context) {
	identity, ok := identityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var patch dto.UpdateUserDTO
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userService.UpdateUser(c.Param("user_id"), identity, patch)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// Delete removes an account and cascades its reviews and likes
// DELETE /api/admin/users/:user_id
func (h *UserHandler) Delete(c *gin.Context) {
	identity, ok := identityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if err := h.userService.DeleteUser(c.Param("user_id"), identity); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}

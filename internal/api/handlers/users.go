package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/unifiedui/user-service/internal/api/dto"
	"github.com/unifiedui/user-service/internal/api/middleware"
	"github.com/unifiedui/user-service/internal/domain/errors"
	"github.com/unifiedui/user-service/internal/services/users"
)

// UsersHandler handles user endpoints.
type UsersHandler struct {
	usersService users.Service
}

// NewUsersHandler creates a new UsersHandler.
func NewUsersHandler(usersService users.Service) *UsersHandler {
	return &UsersHandler{
		usersService: usersService,
	}
}

// CreateUser handles POST /users
// @Summary Create a user
// @Description Inserts a new user. The ID is generated by the server.
// @Tags Users
// @Accept json
// @Produce json
// @Param request body dto.CreateUserRequest true "User to create"
// @Success 201 {object} dto.CreateUserResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/v1/user-service/users [post]
func (h *UsersHandler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	user := req.ToModel()
	if err := h.usersService.Create(c.Request.Context(), user); err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.CreateUserResponse{ID: user.ID.Hex()})
}

// ListUsers handles GET /users
// @Summary List users
// @Description Lists users filtered by a field value, by page, or all of them
// @Tags Users
// @Produce json
// @Param field query string false "Field to filter on" Enums(name, blog, age, location)
// @Param value query string false "Value the field must equal"
// @Param offset query int false "Number of users to skip" minimum(0)
// @Param limit query int false "Maximum number of users" minimum(0) maximum(1000)
// @Success 200 {object} dto.ListUsersResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/v1/user-service/users [get]
func (h *UsersHandler) ListUsers(c *gin.Context) {
	var query dto.ListUsersQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		middleware.HandleError(c, errors.NewValidationError("invalid query parameters", err.Error()))
		return
	}

	result, err := h.usersService.List(c.Request.Context(), &users.ListOptions{
		Field:  query.Field,
		Value:  query.Value,
		Offset: query.Offset,
		Limit:  query.Limit,
	})
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewListUsersResponse(result.Users, result.Total, result.Offset, result.Limit))
}

// DeleteAllUsers handles DELETE /users
// @Summary Delete all users
// @Tags Users
// @Produce json
// @Success 200 {object} dto.DeleteUsersResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/v1/user-service/users [delete]
func (h *UsersHandler) DeleteAllUsers(c *gin.Context) {
	count, err := h.usersService.DeleteAll(c.Request.Context())
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.DeleteUsersResponse{DeletedCount: count})
}

// GetUser handles GET /users/{userId}
// @Summary Get a user
// @Tags Users
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse "Malformed user ID"
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/v1/user-service/users/{userId} [get]
func (h *UsersHandler) GetUser(c *gin.Context) {
	user, err := h.usersService.Get(c.Request.Context(), c.Param("userId"))
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

// UpdateUser handles PATCH /users/{userId}
// @Summary Update a user field
// @Description Sets a single field of the user to the given value
// @Tags Users
// @Accept json
// @Produce json
// @Param userId path string true "User ID"
// @Param request body dto.UpdateFieldRequest true "Field and value"
// @Success 200 {object} dto.UpdateFieldResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/v1/user-service/users/{userId} [patch]
func (h *UsersHandler) UpdateUser(c *gin.Context) {
	var req dto.UpdateFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	modified, err := h.usersService.UpdateField(c.Request.Context(), c.Param("userId"), req.Field, req.Value)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.UpdateFieldResponse{Modified: modified})
}

// DeleteUser handles DELETE /users/{userId}
// @Summary Delete a user
// @Tags Users
// @Param userId path string true "User ID"
// @Success 204 "User deleted"
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/v1/user-service/users/{userId} [delete]
func (h *UsersHandler) DeleteUser(c *gin.Context) {
	if err := h.usersService.Delete(c.Request.Context(), c.Param("userId")); err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetUserByName handles GET /users/by-name/{name}
// @Summary Get a user by name
// @Description Returns the first user with the given name
// @Tags Users
// @Produce json
// @Param name path string true "User name"
// @Success 200 {object} dto.UserResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/v1/user-service/users/by-name/{name} [get]
func (h *UsersHandler) GetUserByName(c *gin.Context) {
	user, err := h.usersService.GetByName(c.Request.Context(), c.Param("name"))
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

// UpdateUserByName handles PATCH /users/by-name/{name}
// @Summary Update a user field by name
// @Tags Users
// @Accept json
// @Produce json
// @Param name path string true "User name"
// @Param request body dto.UpdateFieldRequest true "Field and value"
// @Success 200 {object} dto.UpdateFieldResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/v1/user-service/users/by-name/{name} [patch]
func (h *UsersHandler) UpdateUserByName(c *gin.Context) {
	var req dto.UpdateFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	modified, err := h.usersService.UpdateFieldByName(c.Request.Context(), c.Param("name"), req.Field, req.Value)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.UpdateFieldResponse{Modified: modified})
}

// CreateIndex handles POST /users/indexes
// @Summary Create an index
// @Description Creates an ascending index on a user field
// @Tags Users
// @Accept json
// @Produce json
// @Param request body dto.CreateIndexRequest true "Field to index"
// @Success 201 {object} dto.CreateIndexResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/v1/user-service/users/indexes [post]
func (h *UsersHandler) CreateIndex(c *gin.Context) {
	var req dto.CreateIndexRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	name, err := h.usersService.CreateIndex(c.Request.Context(), req.Field)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.CreateIndexResponse{Name: name})
}

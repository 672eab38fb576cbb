// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import "github.com/unifiedui/user-service/internal/domain/models"

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// HealthResponse represents a health check response.
type HealthResponse struct {
	Status     string            `json:"status"`
	Components map[string]string `json:"components,omitempty"`
}

// UserResponse represents a user in API responses.
type UserResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Blog     string `json:"blog"`
	Age      int    `json:"age"`
	Location string `json:"location"`
}

// NewUserResponse converts a user model into its API representation.
func NewUserResponse(user *models.User) *UserResponse {
	return &UserResponse{
		ID:       user.ID.Hex(),
		Name:     user.Name,
		Blog:     user.Blog,
		Age:      user.Age,
		Location: user.Location,
	}
}

// ListUsersResponse represents the response for listing users.
type ListUsersResponse struct {
	Users  []*UserResponse `json:"users"`
	Total  int64           `json:"total"`
	Limit  int64           `json:"limit,omitempty"`
	Offset int64           `json:"offset,omitempty"`
}

// NewListUsersResponse converts user models into a list response.
func NewListUsersResponse(users []*models.User, total, offset, limit int64) *ListUsersResponse {
	responses := make([]*UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, NewUserResponse(user))
	}
	return &ListUsersResponse{
		Users:  responses,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	}
}

// CreateUserResponse represents the response for creating a user.
type CreateUserResponse struct {
	ID string `json:"id"`
}

// UpdateFieldResponse represents the result of a field update.
type UpdateFieldResponse struct {
	Modified bool `json:"modified"`
}

// DeleteUsersResponse represents the result of deleting all users.
type DeleteUsersResponse struct {
	DeletedCount int64 `json:"deletedCount"`
}

// CreateIndexResponse represents the name of a created index.
type CreateIndexResponse struct {
	Name string `json:"name"`
}

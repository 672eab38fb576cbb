// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import "github.com/unifiedui/user-service/internal/domain/models"

// CreateUserRequest represents the request body for creating a user.
// The ID is always assigned by the server.
type CreateUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Blog     string `json:"blog"`
	Age      int    `json:"age" binding:"gte=0"`
	Location string `json:"location"`
}

// ToModel converts the request into a user without an ID.
func (r *CreateUserRequest) ToModel() *models.User {
	return &models.User{
		Name:     r.Name,
		Blog:     r.Blog,
		Age:      r.Age,
		Location: r.Location,
	}
}

// UpdateFieldRequest represents the request body for updating a single user field.
type UpdateFieldRequest struct {
	Field string `json:"field" binding:"required,oneof=name blog age location"`
	Value string `json:"value"`
}

// CreateIndexRequest represents the request body for creating an index.
type CreateIndexRequest struct {
	Field string `json:"field" binding:"required"`
}

// ListUsersQuery represents the query parameters for listing users.
type ListUsersQuery struct {
	Field  string `form:"field"`
	Value  string `form:"value"`
	Offset int64  `form:"offset" binding:"gte=0"`
	Limit  int64  `form:"limit" binding:"gte=0,lte=1000"`
}

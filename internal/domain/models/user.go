// Package models contains domain models for the User Service.
package models

import (
	"fmt"
	"strconv"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a single document of the users collection.
type User struct {
	// ID is assigned by the storage layer on insert and never changes afterwards.
	ID       primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name     string             `json:"name" bson:"name" validate:"required,max=200"`
	Blog     string             `json:"blog" bson:"blog" validate:"omitempty,max=2048"`
	Age      int                `json:"age" bson:"age" validate:"gte=0,lte=150"`
	Location string             `json:"location" bson:"location" validate:"max=200"`
}

// UserField identifies an updatable field of a User by its storage name.
type UserField string

const (
	// UserFieldName is the user's name.
	UserFieldName UserField = "name"
	// UserFieldBlog is the user's blog URL.
	UserFieldBlog UserField = "blog"
	// UserFieldAge is the user's age.
	UserFieldAge UserField = "age"
	// UserFieldLocation is the user's location.
	UserFieldLocation UserField = "location"
)

// UserFields lists every selectable field.
var UserFields = []UserField{
	UserFieldName,
	UserFieldBlog,
	UserFieldAge,
	UserFieldLocation,
}

// ParseUserField returns the UserField matching the given storage name.
func ParseUserField(s string) (UserField, error) {
	field := UserField(s)
	if !field.IsValid() {
		return "", fmt.Errorf("unknown user field %q", s)
	}
	return field, nil
}

// IsValid reports whether f is one of the known user fields.
func (f UserField) IsValid() bool {
	switch f {
	case UserFieldName, UserFieldBlog, UserFieldAge, UserFieldLocation:
		return true
	}
	return false
}

// String returns the storage name of the field.
func (f UserField) String() string {
	return string(f)
}

// Convert turns a raw string into the value stored for the field.
// Age is stored as an integer, every other field as a string.
func (f UserField) Convert(raw string) (interface{}, error) {
	switch f {
	case UserFieldAge:
		age, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("field %s expects an integer, got %q", f, raw)
		}
		return age, nil
	case UserFieldName, UserFieldBlog, UserFieldLocation:
		return raw, nil
	default:
		return nil, fmt.Errorf("unknown user field %q", string(f))
	}
}

package entity

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Roles a user account may hold. Exactly one admin account may exist.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// ValidRole reports whether role is one of the allowed values.
func ValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin
}

// User is the root entity: every other document holds non-owning
// references to it. Password holds a bcrypt hash, never plain text.
type User struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username   string             `bson:"username" json:"username"`
	Email      string             `bson:"email" json:"email"`
	Password   string             `bson:"password" json:"-"`
	Role       string             `bson:"role" json:"role"`
	IsDisabled bool               `bson:"isDisabled" json:"isDisabled"`
}

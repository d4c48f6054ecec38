package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// DefaultProfileImage is assigned to every newly registered user.
const DefaultProfileImage = "https://i.imgur.com/2VVImvn.jpg"

// RoleKind is the enumerated privilege level carried on a Role row. Admin
// checks compare kinds, never role titles, so renaming a seeded role cannot
// change who is privileged.
type RoleKind string

const (
	RoleKindAdmin RoleKind = "admin"
	RoleKindUser  RoleKind = "user"
)

// Role is a named label users reference. The "Admin" and "User" rows are
// seeded at startup.
type Role struct {
	ID    uint     `json:"id" gorm:"primaryKey"`
	Title string   `json:"title" gorm:"size:128;uniqueIndex"`
	Kind  RoleKind `json:"kind" gorm:"size:16;default:'user'"`
}

// User is a registered forum member.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"size:128;uniqueIndex"`
	Email        string    `json:"email" gorm:"uniqueIndex"`
	Password     string    `json:"-"` // bcrypt hash
	DateCreated  time.Time `json:"date_created" gorm:"autoCreateTime"`
	ProfileImage string    `json:"profile_image" gorm:"size:128"`
	RoleID       uint      `json:"role_id"`
	Role         Role      `json:"role"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role.Kind == RoleKindAdmin
}

// CreateUserRequest defines the request body for registering a user.
type CreateUserRequest struct {
	Username string `json:"username" validate:"required,min=2,max=128"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// UpdateUserRequest defines the request body for changing a user's account.
// Absent fields keep their current value.
type UpdateUserRequest struct {
	Email        *string `json:"email,omitempty" validate:"omitempty,email"`
	Password     *string `json:"password,omitempty" validate:"omitempty,min=8"`
	ProfileImage *string `json:"profile_image,omitempty" validate:"omitempty,max=128"`
}

// CreateRoleRequest defines the request body for creating or updating a role.
type CreateRoleRequest struct {
	Title string   `json:"title" validate:"required,min=1,max=128"`
	Kind  RoleKind `json:"kind" validate:"omitempty,oneof=admin user"`
}

// TokenRequest defines the request body for obtaining an access token.
type TokenRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims.
type JwtCustomClaims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

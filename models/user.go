package models

import (
	"strings"
	"time"
)

type Role string

const (
	RoleStudent Role = "STUDENT"
	RoleTutor   Role = "TUTOR"
	RoleAdmin   Role = "ADMIN"
)

// ParseRole accepts any casing ("student", "Tutor").
func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleStudent:
		return RoleStudent, true
	case RoleTutor:
		return RoleTutor, true
	case RoleAdmin:
		return RoleAdmin, true
	}
	return "", false
}

type UserStatus string

const (
	UserActive UserStatus = "ACTIVE"
	UserBanned UserStatus = "BANNED"
)

func ParseUserStatus(s string) (UserStatus, bool) {
	switch UserStatus(strings.ToUpper(strings.TrimSpace(s))) {
	case UserActive:
		return UserActive, true
	case UserBanned:
		return UserBanned, true
	}
	return "", false
}

// User represents a platform account of any role.
type User struct {
	ID           string     `bson:"id" json:"id"`
	Name         string     `bson:"name" json:"name"`
	Email        string     `bson:"email" json:"email"`
	Phone        string     `bson:"phone,omitempty" json:"phone,omitempty"`
	AvatarURL    string     `bson:"avatarUrl,omitempty" json:"avatarUrl,omitempty"`
	PasswordHash string     `bson:"passwordHash" json:"-"`
	Role         Role       `bson:"role" json:"role"`
	Status       UserStatus `bson:"status" json:"status"`
	CreatedAt    time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time  `bson:"updatedAt" json:"updatedAt"`
}

// RegisterRequest is the payload of POST /auth/register.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	Role     string `json:"role" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      *User     `json:"user"`
}

// ProfileUpdateRequest is used by students and admins; nil fields are left untouched.
type ProfileUpdateRequest struct {
	Name  *string `json:"name" binding:"omitempty,min=2,max=100"`
	Phone *string `json:"phone" binding:"omitempty,max=32"`
}

type UserStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UserFilter is the query string of GET /admin/users.
type UserFilter struct {
	Role   string `form:"role"`
	Status string `form:"status"`
	Search string `form:"search"`
	Page   int    `form:"page" binding:"omitempty,gte=1,lte=10000"`
	Limit  int    `form:"limit" binding:"omitempty,gte=1,lte=100"`
}

type UserPage struct {
	Users      []User     `json:"users"`
	Pagination Pagination `json:"pagination"`
}

package domain

import (
	"errors"
	"time"
)

// Role is the single permission class a user holds.
type Role string

const (
	RoleBuyer   Role = "BUYER"
	RoleRealtor Role = "REALTOR"
)

var (
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("access forbidden")
	ErrMissingSigningKey  = errors.New("token signing key is not configured")
)

// User models an account in the system.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserInfo is the identity carried by a verified token.
type UserInfo struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

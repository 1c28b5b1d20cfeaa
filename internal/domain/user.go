package domain

import (
	"time"
)

type User struct {
	ID           string       `json:"id"`
	Username     string       `json:"username"`
	Password     string       `json:"password"`
	Name         string       `json:"name"`
	Role         UserRole     `json:"role"`
	CreatedAt    time.Time    `json:"createdAt"`
	WorkerStatus WorkerStatus `json:"workerStatus,omitempty"`
}

type CreateUserInput struct {
	Username string   `json:"username"`
	Password string   `json:"password"`
	Name     string   `json:"name"`
	Role     UserRole `json:"role"`
}

type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type TokenPair struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleWorker UserRole = "worker"
)

func (r UserRole) IsValid() bool {
	switch r {
	case RoleAdmin, RoleWorker:
		return true
	default:
		return false
	}
}

type WorkerStatus string

const (
	WorkerAvailable WorkerStatus = "available"
	WorkerBusy      WorkerStatus = "busy"
	WorkerOffline   WorkerStatus = "offline"
)

func (s WorkerStatus) IsValid() bool {
	switch s {
	case WorkerAvailable, WorkerBusy, WorkerOffline:
		return true
	default:
		return false
	}
}

// HasRole reports whether the user may act as requiredRole. Admins pass every check.
func (u *User) HasRole(requiredRole UserRole) bool {
	switch requiredRole {
	case RoleAdmin:
		return u.Role == RoleAdmin
	case RoleWorker:
		return u.Role == RoleWorker || u.Role == RoleAdmin
	default:
		return false
	}
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

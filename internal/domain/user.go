package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// UserRole separates end users from catalog administrators.
type UserRole string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"
)

// User is referenced for ownership checks; credential handling lives outside
// this service.
type User struct {
	ID          uuid.UUID
	Username    string
	Email       string
	Role        UserRole
	Preferences json.RawMessage
	CreatedAt   time.Time
}

package models

import "time"

// UserRole represents the available roles for route authorisation.
type UserRole string

const (
	RoleAdmin  UserRole = "ADMIN"
	RoleViewer UserRole = "VIEWER"
)

// User represents an account stored in the users table.
type User struct {
	ID           string    `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         UserRole  `db:"role" json:"role"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// Pagination describes a paged listing.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}

// ToMeta renders pagination as response metadata.
func (p Pagination) ToMeta() map[string]interface{} {
	return map[string]interface{}{
		"page":        p.Page,
		"page_size":   p.PageSize,
		"total_count": p.TotalCount,
	}
}

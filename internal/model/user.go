package model

import "time"

// User is a marketplace customer account as stored by the catalog service.
type User struct {
	ID          string     `json:"id"`
	Name        string     `json:"name,omitempty"`
	Email       string     `json:"email,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
	Active      bool       `json:"isActive"`
}

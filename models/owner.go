package models

import "time"

// Owner is a shop owner account used for the management endpoints.
type Owner struct {
	ID           string    `json:"id"`
	ShopID       string    `json:"shopId"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"passwordHash,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

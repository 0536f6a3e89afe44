package models

import "time"

// BookingDraft is the partially filled booking a client builds across the
// wizard steps. Every field stays nil until its step has run.
type BookingDraft struct {
	ShopID       string           `json:"shopId,omitempty"`
	Service      *ServiceRef      `json:"service,omitempty"`
	Professional *ProfessionalRef `json:"professional,omitempty"`
	Date         string           `json:"date,omitempty"` // "YYYY-MM-DD"
	Time         string           `json:"time,omitempty"` // "HH:MM"
	Client       *ClientInfo      `json:"client,omitempty"`
	UpdatedAt    time.Time        `json:"updatedAt,omitempty"`
}

type ServiceRef struct {
	ID       string  `json:"id,omitempty"`
	Name     string  `json:"name"`
	Duration int     `json:"duration,omitempty"` // minutes
	Price    float64 `json:"price"`
}

type ProfessionalRef struct {
	ID     string `json:"id,omitempty"`
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
}

type ClientInfo struct {
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}

// DraftPatch carries the fields one step writes. Nil fields are left alone.
type DraftPatch struct {
	Service      *ServiceRef      `json:"service,omitempty"`
	Professional *ProfessionalRef `json:"professional,omitempty"`
	Date         *string          `json:"date,omitempty"`
	Time         *string          `json:"time,omitempty"`
	Client       *ClientInfo      `json:"client,omitempty"`
}

// IsEmpty reports whether no step has written to the draft yet.
func (d BookingDraft) IsEmpty() bool {
	return d.Service == nil && d.Professional == nil && d.Date == "" && d.Time == "" && d.Client == nil
}

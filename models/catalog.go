package models

// Service is a catalogue entry a client can book.
type Service struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Duration    int     `json:"duration"` // minutes
	Price       float64 `json:"price"`
	Description string  `json:"description,omitempty"`
	Active      bool    `json:"active"`
}

// Ref snapshots the fields the booking draft keeps.
func (s Service) Ref() *ServiceRef {
	return &ServiceRef{ID: s.ID, Name: s.Name, Duration: s.Duration, Price: s.Price}
}

// Professional is a shop employee clients can choose in the wizard.
type Professional struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
	Role   string `json:"role,omitempty"`
	Email  string `json:"email,omitempty"`
	Phone  string `json:"phone,omitempty"`
	Active bool   `json:"active"`
}

func (p Professional) Ref() *ProfessionalRef {
	return &ProfessionalRef{ID: p.ID, Name: p.Name, Avatar: p.Avatar}
}

package models

// Report aggregates a shop's appointments over a date range.
type Report struct {
	ShopID          string         `json:"shopId"`
	From            string         `json:"from,omitempty"`
	To              string         `json:"to,omitempty"`
	Appointments    int            `json:"appointments"`
	Revenue         float64        `json:"revenue"`
	AverageTicket   float64        `json:"averageTicket"`
	ByService       []ReportBucket `json:"byService"`
	ByProfessional  []ReportBucket `json:"byProfessional"`
	ByPaymentMethod []ReportBucket `json:"byPaymentMethod"`
	ByDay           []ReportBucket `json:"byDay"`
}

type ReportBucket struct {
	Key     string  `json:"key"`
	Count   int     `json:"count"`
	Revenue float64 `json:"revenue"`
}

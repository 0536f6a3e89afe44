package models

import "time"

const (
	AppointmentStatusConfirmed = "Confirmed"

	// AnyProfessional is shown when the client let the shop pick the professional.
	AnyProfessional = "Qualquer profissional"
)

// Appointment is a finalized booking. It is written once and never mutated.
type Appointment struct {
	ID               string    `bson:"id" json:"id"`                                                  // Unix milliseconds at finalization
	ShopID           string    `bson:"shop_id" json:"shopId"`                                         // Owning shop
	ClientName       string    `bson:"client_name" json:"clientName"`                                 // Client full name
	ClientPhone      string    `bson:"client_phone,omitempty" json:"clientPhone,omitempty"`           // Optional contact
	ClientEmail      string    `bson:"client_email,omitempty" json:"clientEmail,omitempty"`           // Optional contact
	ServiceName      string    `bson:"service_name" json:"serviceName"`                               // Snapshot of the service name
	ProfessionalName string    `bson:"professional_name" json:"professionalName"`                     // Or AnyProfessional
	DateTime         string    `bson:"date_time" json:"dateTime"`                                     // "YYYY-MM-DDTHH:MM" (shop local time)
	Duration         int       `bson:"duration" json:"duration"`                                      // Minutes
	Status           string    `bson:"status" json:"status"`                                          // Starts as "Confirmed"
	PaymentMethod    string    `bson:"payment_method" json:"paymentMethod"`                           // cash, pix or card
	PaymentReference string    `bson:"payment_reference,omitempty" json:"paymentReference,omitempty"` // Invoice or intent ID
	Price            float64   `bson:"price" json:"price"`                                            // Service price
	CreatedAt        time.Time `bson:"created_at" json:"createdAt"`
}

// DateTimeLayout parses Appointment.DateTime.
const DateTimeLayout = "2006-01-02T15:04"

// StartsAt parses DateTime in loc.
func (a Appointment) StartsAt(loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateTimeLayout, a.DateTime, loc)
}

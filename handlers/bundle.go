package handlers

// HandlerBundle groups the endpoint handlers routes are registered from.
type HandlerBundle struct {
	Auth      *AuthHandler
	Booking   *BookingHandler
	Shop      *ShopHandler
	Employees *EmployeeHandler
	Reports   *ReportHandler
	Support   *SupportHandler

	// Health answers /health; nil reports plain liveness.
	Health func() (healthy bool, details any)
}

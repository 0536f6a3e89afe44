package utils

import "time"

// Gin context keys set by the auth and logging middleware.
const (
	CtxLoggerKey  = "logger"
	CtxOwnerIDKey = "ownerID"
	CtxShopIDKey  = "shopID"
)

// HealthCheckInterval is how often StartHealthMonitor pings its dependencies.
const HealthCheckInterval = 30 * time.Second

// ReminderMarkerTTL keeps "already reminded" markers around long enough to
// outlive any reminder lead time.
const ReminderMarkerTTL = 8 * 24 * time.Hour

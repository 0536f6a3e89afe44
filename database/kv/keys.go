package kv

// Key schema. Nothing here is versioned.
const (
	ShopsKey = "shops"
)

func DraftKey(shopID, sessionID string) string {
	return "booking:draft:" + shopID + ":" + sessionID
}

func AppointmentsKey(shopID string) string { return "shop:" + shopID + ":appointments" }

func ServicesKey(shopID string) string { return "shop:" + shopID + ":services" }

func ProfessionalsKey(shopID string) string { return "shop:" + shopID + ":professionals" }

func PaymentsKey(shopID string) string { return "shop:" + shopID + ":payments" }

func NotificationSettingsKey(shopID string) string {
	return "shop:" + shopID + ":notification_settings"
}

func NotificationsKey(shopID string) string { return "shop:" + shopID + ":notifications" }

func ChatKey(shopID string) string { return "shop:" + shopID + ":chat" }

func ChatSeqKey(shopID string) string { return "shop:" + shopID + ":chat:seq" }

func ReminderKey(shopID, appointmentID string) string {
	return "shop:" + shopID + ":reminded:" + appointmentID
}

func OwnerKey(email string) string { return "owner:" + email }

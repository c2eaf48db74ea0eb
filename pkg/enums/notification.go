package enums

import "fmt"

// NotificationType describes the admin notification kinds.
type NotificationType string

const (
	NotificationTypeNewOrder     NotificationType = "new_order"
	NotificationTypeOrderUpdate  NotificationType = "order_update"
	NotificationTypeStockAlert   NotificationType = "stock_alert"
	NotificationTypeSystemNotice NotificationType = "system"
)

var validNotificationTypes = []NotificationType{
	NotificationTypeNewOrder,
	NotificationTypeOrderUpdate,
	NotificationTypeStockAlert,
	NotificationTypeSystemNotice,
}

// IsValid reports whether the value matches the canonical notification type enum.
func (n NotificationType) IsValid() bool {
	for _, candidate := range validNotificationTypes {
		if candidate == n {
			return true
		}
	}
	return false
}

// ParseNotificationType converts the raw string to NotificationType.
func ParseNotificationType(value string) (NotificationType, error) {
	for _, candidate := range validNotificationTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid notification type %q", value)
}

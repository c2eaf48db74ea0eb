package enums

// StaffType selects which assignment slot of an order is filled. Values
// outside the known set are accepted and only touch the order timestamp.
type StaffType string

const (
	StaffTypePickup   StaffType = "pickup"
	StaffTypeDelivery StaffType = "delivery"
)

func (s StaffType) IsValid() bool {
	return s == StaffTypePickup || s == StaffTypeDelivery
}

package service

// Broadcaster delivers best-effort change notifications to live subscribers.
// Delivery is fire-and-forget: no acknowledgment, no replay for clients that
// are offline at emission time.
type Broadcaster interface {
	// BroadcastAll emits an event to every connected client.
	BroadcastAll(event string, payload any)
	// BroadcastRoom emits an event only to clients subscribed to the room.
	BroadcastRoom(room string, event string, payload any)
}

// RoomForOwner names the per-identity room for an owner id.
func RoomForOwner(ownerID string) string {
	return ownerID + "-updates"
}

const (
	RoomCustomerUpdates = "customer-updates"
	RoomAdminUpdates    = "admin-updates"
)

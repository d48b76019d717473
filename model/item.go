package model

type Item struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	OwnerID     int64  `json:"ownerId"`
	RequestID   *int64 `json:"requestId,omitempty"`
}

// ItemWithBookings is the owner-aware read view of an item. LastBooking and
// NextBooking are filled only when the caller owns the item.
type ItemWithBookings struct {
	ID          int64        `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Available   bool         `json:"available"`
	RequestID   *int64       `json:"requestId,omitempty"`
	LastBooking *BookingInfo `json:"lastBooking"`
	NextBooking *BookingInfo `json:"nextBooking"`
	Comments    []Comment    `json:"comments"`
}

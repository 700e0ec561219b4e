package model

const (
	PinTypeNeed  = "need"
	PinTypeOffer = "offer"
)

const (
	PinStatusUnverified = "unverified"
	PinStatusVerified   = "verified"
)

// Pin represents a geolocated report of a need or an offer of help
type Pin struct {
	ID        string  `json:"id"`
	Type      string  `json:"type"` // "need" or "offer"
	Category  string  `json:"category"`
	Details   string  `json:"details"`
	Quantity  string  `json:"quantity"`
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
	Status    string  `json:"status"`     // "unverified" until an admin toggles it
	CreatedBy string  `json:"created_by"` // owning user id; pins are deleted together with their owner
	CreatedAt int64   `json:"created_at"` // epoch milliseconds
}

// CreatePinRequest is used for posting a new pin.
// Lat/Lng are pointers so that 0 is accepted as a real coordinate
// while a missing field still fails validation.
type CreatePinRequest struct {
	Type     string   `json:"type" binding:"required,oneof=need offer"`
	Category string   `json:"category"`
	Details  string   `json:"details"`
	Quantity string   `json:"quantity"`
	Lat      *float64 `json:"lat" binding:"required"`
	Lng      *float64 `json:"lng" binding:"required"`
}

// VolunteerCenterRequest sets the coordinate a volunteer serves from
type VolunteerCenterRequest struct {
	Lat *float64 `json:"lat" binding:"required"`
	Lng *float64 `json:"lng" binding:"required"`
}

type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// PinFilters contains optional filter parameters for pin listing.
// Radius is in meters, matching the distance function.
type PinFilters struct {
	Lat      *float64
	Lng      *float64
	Radius   *float64
	Type     *string
	Category *string
}

package model

const (
	RoleUser      = "user"
	RoleVolunteer = "volunteer"
	RoleAdmin     = "admin"
)

// ValidRole reports whether role is one of the three known roles.
func ValidRole(role string) bool {
	return role == RoleUser || role == RoleVolunteer || role == RoleAdmin
}

// User represents a registered account
type User struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Email           string   `json:"email"`
	PasswordHash    string   `json:"-"` // Do not expose password hash in JSON responses
	Role            string   `json:"role"`
	VolunteerRadius int      `json:"volunteer_radius"` // alert radius in kilometers, meaningful for volunteers
	Hours           int      `json:"hours"`
	Supplies        int      `json:"supplies"`
	CenterLat       *float64 `json:"center_lat,omitempty"` // Pointers: unset until the volunteer picks a center
	CenterLng       *float64 `json:"center_lng,omitempty"`
	CreatedAt       int64    `json:"created_at"` // epoch milliseconds
}

// RegisterRequest is used for creating a new account
type RegisterRequest struct {
	Name            string `json:"name" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=6"`
	Role            string `json:"role"`
	VolunteerRadius int    `json:"volunteer_radius" binding:"gte=0"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// CreateAdminRequest is used by an existing admin to provision another admin
type CreateAdminRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// Stats is the aggregate snapshot returned to admins, computed fresh on each call
type Stats struct {
	TotalUsers      int `json:"totalUsers"`
	TotalVolunteers int `json:"totalVolunteers"`
	TotalPins       int `json:"totalPins"`
	NeedPins        int `json:"needPins"`
	OfferPins       int `json:"offerPins"`
	VerifiedPins    int `json:"verifiedPins"`
}

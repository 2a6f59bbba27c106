package models

// Principal is the authenticated actor attached to a request by the auth middleware.
type Principal struct {
	UserID string
	Role   Role
}

func (p Principal) Is(role Role) bool {
	return p.Role == role
}

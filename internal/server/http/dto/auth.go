package dto

// AuthRequest describes login/password payload.
type AuthRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// RegisterRequest is sent by an admin to create an operator account.
type RegisterRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// NavLink is one navigation menu entry.
type NavLink struct {
	Label string `json:"label"`
	Path  string `json:"path"`
}

// UserResponse describes an operator and the menu their role sees.
type UserResponse struct {
	ID         int64     `json:"id"`
	Login      string    `json:"login"`
	Role       string    `json:"role"`
	Navigation []NavLink `json:"navigation"`
}

package auth

// LoginRequest is the admin login payload
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest carries a refresh token when it is not in a cookie
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

package jwt

import "github.com/golang-jwt/jwt/v5"

// Claims is the access token payload
type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

package helpers

import "github.com/golang-jwt/jwt/v5"

// CustomClaims is the payload of tokens issued on login.
type CustomClaims struct {
	UserID string `json:"userId"`
	Email  string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// internal/pkg/token/claims.go
package token

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the session identity inside the signed token.
type Claims struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// internal/pkg/session/types.go
package session

import "time"

type SessionData struct {
	JTI            string    `json:"jti"`
	Email          string    `json:"email"`
	Name           string    `json:"name,omitempty"`
	IPAddress      string    `json:"ip_address"`
	UserAgent      string    `json:"user_agent"`
	LoginAt        time.Time `json:"login_at"`
	LastActivityAt time.Time `json:"last_activity_at"`
	ExpiresAt      time.Time `json:"expires_at"`
}

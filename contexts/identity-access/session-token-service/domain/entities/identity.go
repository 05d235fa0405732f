package entities

import "time"

// IdentityClaims is the verified identity embedded in a session token.
type IdentityClaims struct {
	Email     string
	Name      string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

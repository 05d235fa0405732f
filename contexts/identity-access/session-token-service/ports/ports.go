package ports

import (
	"time"

	"github.com/toma2023/fluent-academy-serverside/contexts/identity-access/session-token-service/domain/entities"
)

type TokenSigner interface {
	Sign(claims entities.IdentityClaims) (string, error)
	// Parse validates signature and expiry relative to now.
	Parse(token string, now time.Time) (entities.IdentityClaims, error)
}

type Clock interface {
	Now() time.Time
}

package util

import (
	"encoding/base64"

	"github.com/google/uuid"
)

// ShortUUID generates a 22-character URL-safe identifier.
func ShortUUID() string {
	u := uuid.New()
	return base64.RawURLEncoding.EncodeToString(u[:])
}

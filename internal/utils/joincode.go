package utils

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateJoinCode produces a short, shareable team join code. Uniqueness is
// enforced by the database index; collisions on 8 hex chars are rare enough
// that the create path simply retries.
func GenerateJoinCode() string {
	code := strings.ReplaceAll(uuid.NewString(), "-", "")
	return strings.ToUpper(code[:8])
}

package upstream

import "github.com/google/uuid"

// NewIdempotencyKey mints the value sent in the Idempotency-Key header of an
// order-creation request.
func NewIdempotencyKey() string {
	return uuid.NewString()
}

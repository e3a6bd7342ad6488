package repository

import (
	"context"
	"time"
)

type HealthRepository interface {
	// Now round-trips to the database and returns its clock.
	Now(ctx context.Context) (time.Time, error)
}

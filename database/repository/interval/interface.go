// File: database/repository/interval/interface.go
package intervalRepo

import (
	"context"
	"time"

	"autoshop/database"
	"autoshop/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// IntervalRepository is the engine's read/write access to persisted
// intervals. Every list method excludes cancelled intervals and reflects
// committed state at call time.
type IntervalRepository interface {
	Create(ctx context.Context, iv models.Interval) error
	GetByID(ctx context.Context, id string) (*models.Interval, error)

	// ListShopForDay returns blocking shop bookings whose start falls in
	// the UTC day window of the given date.
	ListShopForDay(ctx context.Context, day time.Time) ([]models.Interval, error)
	// ListForEmployee returns the employee's blocking entries that touch
	// [from, to), plus any still-open entry regardless of day.
	ListForEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]models.Interval, error)
	// FindActiveTimer returns the employee's open active entry, or nil.
	FindActiveTimer(ctx context.Context, employeeID string) (*models.Interval, error)
	// ListOpenTimersOlderThan returns open active entries started before
	// the cutoff, for the stale-timer sweep.
	ListOpenTimersOlderThan(ctx context.Context, cutoff time.Time) ([]models.Interval, error)

	Complete(ctx context.Context, id string, end time.Time) error
	Cancel(ctx context.Context, id string) error
	Reschedule(ctx context.Context, id string, start, end time.Time) error
	Delete(ctx context.Context, id string) error
}

type mongoIntervalRepo struct {
	coll *mongo.Collection
}

// NewMongoIntervalRepo constructs a new MongoDB IntervalRepository.
func NewMongoIntervalRepo() IntervalRepository {
	db := database.MongoClient.Database("autoshop")
	repo := &mongoIntervalRepo{
		coll: db.Collection("intervals"),
	}
	repo.ensureIndexes()
	return repo
}

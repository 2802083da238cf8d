// File: database/repository/interval/queries.go
package intervalRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"autoshop/models"
)

// UTCDayWindow returns the [00:00:00.000Z, 23:59:59.999Z] window of the
// given date. Same-day bookings are bucketed by this window regardless of
// the shop's display timezone.
func UTCDayWindow(date time.Time) (time.Time, time.Time) {
	y, m, d := date.UTC().Date()
	from := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	to := time.Date(y, m, d, 23, 59, 59, 999_000_000, time.UTC)
	return from, to
}

func (r *mongoIntervalRepo) ListShopForDay(ctx context.Context, day time.Time) ([]models.Interval, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	from, to := UTCDayWindow(day)
	filter := bson.M{
		"ownerKind": models.OwnerShop,
		"status":    bson.M{"$ne": models.IntervalCancelled},
		"start":     bson.M{"$gte": from, "$lte": to},
	}

	opts := options.Find().SetSort(bson.M{"start": 1})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch shop intervals: %w", err)
	}
	defer cursor.Close(ctx)

	var intervals []models.Interval
	if err := cursor.All(ctx, &intervals); err != nil {
		return nil, fmt.Errorf("error decoding shop intervals: %w", err)
	}
	return intervals, nil
}

func (r *mongoIntervalRepo) ListForEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]models.Interval, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// Bounded entries must touch [from, to); open entries are always
	// returned so a long-running timer from a previous day still counts.
	filter := bson.M{
		"ownerKind": models.OwnerEmployee,
		"ownerId":   employeeID,
		"status":    bson.M{"$ne": models.IntervalCancelled},
		"$or": bson.A{
			bson.M{"end": bson.M{"$exists": false}},
			bson.M{"end": nil},
			bson.M{"start": bson.M{"$lt": to}, "end": bson.M{"$gt": from}},
		},
	}

	opts := options.Find().SetSort(bson.M{"start": 1})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch employee intervals: %w", err)
	}
	defer cursor.Close(ctx)

	var intervals []models.Interval
	if err := cursor.All(ctx, &intervals); err != nil {
		return nil, fmt.Errorf("error decoding employee intervals: %w", err)
	}
	return intervals, nil
}

func (r *mongoIntervalRepo) FindActiveTimer(ctx context.Context, employeeID string) (*models.Interval, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"ownerKind": models.OwnerEmployee,
		"ownerId":   employeeID,
		"status":    models.IntervalActive,
		"$or": bson.A{
			bson.M{"end": bson.M{"$exists": false}},
			bson.M{"end": nil},
		},
	}

	var iv models.Interval
	err := r.coll.FindOne(ctx, filter).Decode(&iv)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("find active timer failed: %w", err)
	}
	return &iv, nil
}

func (r *mongoIntervalRepo) ListOpenTimersOlderThan(ctx context.Context, cutoff time.Time) ([]models.Interval, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"ownerKind": models.OwnerEmployee,
		"status":    models.IntervalActive,
		"start":     bson.M{"$lt": cutoff},
		"$or": bson.A{
			bson.M{"end": bson.M{"$exists": false}},
			bson.M{"end": nil},
		},
	}

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch stale open timers: %w", err)
	}
	defer cursor.Close(ctx)

	var intervals []models.Interval
	if err := cursor.All(ctx, &intervals); err != nil {
		return nil, fmt.Errorf("error decoding stale open timers: %w", err)
	}
	return intervals, nil
}

// File: database/repository/interval/crud.go
package intervalRepo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"autoshop/models"
)

func (r *mongoIntervalRepo) Create(ctx context.Context, iv models.Interval) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if iv.ID == "" {
		iv.ID = uuid.New().String()
	}
	if iv.Status == "" {
		iv.Status = models.IntervalActive
	}
	if iv.CreatedAt.IsZero() {
		iv.CreatedAt = time.Now().UTC()
	}

	if _, err := r.coll.InsertOne(ctx, iv); err != nil {
		return fmt.Errorf("insert interval failed: %w", err)
	}
	return nil
}

func (r *mongoIntervalRepo) GetByID(ctx context.Context, id string) (*models.Interval, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var iv models.Interval
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&iv)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("interval %s not found", id)
		}
		return nil, fmt.Errorf("find interval failed: %w", err)
	}
	return &iv, nil
}

// Complete closes an interval: sets its end and flips status to completed.
// Only active intervals can be completed.
func (r *mongoIntervalRepo) Complete(ctx context.Context, id string, end time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": id, "status": models.IntervalActive}
	update := bson.M{"$set": bson.M{
		"end":    end,
		"status": models.IntervalCompleted,
	}}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("complete interval failed: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("interval %s not found or not active", id)
	}
	return nil
}

// Cancel is a status flip, never a deletion; history is preserved and the
// interval stops blocking future conflict checks.
func (r *mongoIntervalRepo) Cancel(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"status": models.IntervalCancelled}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("cancel interval failed: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("interval %s not found", id)
	}
	return nil
}

func (r *mongoIntervalRepo) Reschedule(ctx context.Context, id string, start, end time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"start": start, "end": end}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("reschedule interval failed: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("interval %s not found", id)
	}
	return nil
}

func (r *mongoIntervalRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("delete interval failed: %w", err)
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

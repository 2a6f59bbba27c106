package availabilityRepo

import (
	"context"
	"fmt"
	"time"

	"skillbridge/database"
	"skillbridge/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var weeklyOrder = bson.D{{Key: "dayOfWeek", Value: 1}, {Key: "startTime", Value: 1}}

func (r *mongoAvailabilityRepo) ListByTutor(ctx context.Context, tutorID string) ([]models.AvailabilitySlot, error) {
	return r.find(ctx, bson.M{"tutorId": tutorID}, weeklyOrder)
}

func (r *mongoAvailabilityRepo) ListByTutors(ctx context.Context, tutorIDs []string) ([]models.AvailabilitySlot, error) {
	if len(tutorIDs) == 0 {
		return []models.AvailabilitySlot{}, nil
	}
	order := append(bson.D{{Key: "tutorId", Value: 1}}, weeklyOrder...)
	return r.find(ctx, bson.M{"tutorId": bson.M{"$in": tutorIDs}}, order)
}

func (r *mongoAvailabilityRepo) find(ctx context.Context, filter bson.M, order bson.D) ([]models.AvailabilitySlot, error) {
	ctx, cancel := database.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(order))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch slots: %w", err)
	}
	defer cursor.Close(ctx)

	slots := []models.AvailabilitySlot{}
	if err := cursor.All(ctx, &slots); err != nil {
		return nil, fmt.Errorf("error decoding slots: %w", err)
	}
	return slots, nil
}

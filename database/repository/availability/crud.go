package availabilityRepo

import (
	"context"
	"fmt"
	"time"

	"skillbridge/database"
	"skillbridge/models"
	"skillbridge/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type mongoAvailabilityRepo struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoAvailabilityRepo constructs a MongoDB AvailabilityRepository.
func NewMongoAvailabilityRepo(ctx context.Context, db *mongo.Database) AvailabilityRepository {
	repo := &mongoAvailabilityRepo{
		client: db.Client(),
		coll:   db.Collection("availability_slots"),
	}
	if err := repo.ensureIndexes(ctx); err != nil {
		utils.GetLogger().Error("availability_slots: index setup failed", zap.Error(err))
	}
	return repo
}

func (r *mongoAvailabilityRepo) ensureIndexes(ctx context.Context) error {
	ctx, cancel := database.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys:    bson.D{{Key: "tutorId", Value: 1}, {Key: "dayOfWeek", Value: 1}, {Key: "startTime", Value: 1}},
			Options: options.Index().SetName("tutor_day_start_idx"),
		},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create availability indexes: %w", err)
	}
	return nil
}

func (r *mongoAvailabilityRepo) Create(ctx context.Context, slot *models.AvailabilitySlot) error {
	ctx, cancel := database.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	stamp(slot)
	if _, err := r.coll.InsertOne(ctx, slot); err != nil {
		return fmt.Errorf("failed to create slot: %w", database.Translate(err))
	}
	return nil
}

func (r *mongoAvailabilityRepo) GetByID(ctx context.Context, id string) (*models.AvailabilitySlot, error) {
	ctx, cancel := database.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var slot models.AvailabilitySlot
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&slot); err != nil {
		return nil, fmt.Errorf("failed to fetch slot %s: %w", id, database.Translate(err))
	}
	return &slot, nil
}

func (r *mongoAvailabilityRepo) Update(ctx context.Context, slot *models.AvailabilitySlot) (*models.AvailabilitySlot, error) {
	ctx, cancel := database.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"dayOfWeek":   slot.DayOfWeek,
		"startTime":   slot.StartTime,
		"endTime":     slot.EndTime,
		"isAvailable": slot.IsAvailable,
		"updatedAt":   time.Now().UTC(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.AvailabilitySlot
	filter := bson.M{"id": slot.ID, "tutorId": slot.TutorID}
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&updated); err != nil {
		return nil, fmt.Errorf("failed to update slot %s: %w", slot.ID, database.Translate(err))
	}
	return &updated, nil
}

func (r *mongoAvailabilityRepo) Delete(ctx context.Context, tutorID, id string) error {
	ctx, cancel := database.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id, "tutorId": tutorID})
	if err != nil {
		return fmt.Errorf("failed to delete slot %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return database.ErrNotFound
	}
	return nil
}

func (r *mongoAvailabilityRepo) ReplaceForTutor(ctx context.Context, tutorID string, slots []models.AvailabilitySlot) error {
	ctx, cancel := database.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	docs := make([]interface{}, len(slots))
	for i := range slots {
		slots[i].TutorID = tutorID
		stamp(&slots[i])
		docs[i] = slots[i]
	}

	err := database.RunInTransaction(ctx, r.client, func(sc mongo.SessionContext) error {
		if _, err := r.coll.DeleteMany(sc, bson.M{"tutorId": tutorID}); err != nil {
			return fmt.Errorf("clear slots failed: %w", err)
		}
		if len(docs) == 0 {
			return nil
		}
		if _, err := r.coll.InsertMany(sc, docs, options.InsertMany().SetOrdered(true)); err != nil {
			return fmt.Errorf("insert slots failed: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("replace slots transaction failed: %w", database.Translate(err))
	}
	return nil
}

func stamp(slot *models.AvailabilitySlot) {
	if slot.ID == "" {
		slot.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	slot.CreatedAt = now
	slot.UpdatedAt = now
}

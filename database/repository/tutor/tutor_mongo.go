package tutorRepo

import (
	"context"
	"fmt"
	"time"

	"skillbridge/database"
	"skillbridge/models"
	"skillbridge/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const CollectionName = "tutor_profiles"

// MongoTutorRepo implements TutorRepository using MongoDB.
type MongoTutorRepo struct {
	coll      *mongo.Collection
	usersColl *mongo.Collection
}

func NewMongoTutorRepo(ctx context.Context, db *mongo.Database) TutorRepository {
	repo := &MongoTutorRepo{
		coll:      db.Collection(CollectionName),
		usersColl: db.Collection("users"),
	}
	if err := repo.ensureIndexes(ctx); err != nil {
		utils.GetLogger().Error("tutor_profiles: index setup failed", zap.Error(err))
	}
	return repo
}

func (r *MongoTutorRepo) ensureIndexes(ctx context.Context) error {
	ctx, cancel := database.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "categoryId", Value: 1}}},
		{Keys: bson.D{{Key: "rating", Value: -1}}},
		{Keys: bson.D{{Key: "hourlyRate", Value: 1}}},
		{Keys: bson.D{{Key: "subjects", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoTutorRepo) Create(ctx context.Context, profile *models.TutorProfile) error {
	ctx, cancel := database.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now().UTC()
	profile.CreatedAt = now
	profile.UpdatedAt = now
	if profile.Subjects == nil {
		profile.Subjects = []string{}
	}
	if _, err := r.coll.InsertOne(ctx, profile); err != nil {
		return fmt.Errorf("failed to create tutor profile: %w", database.Translate(err))
	}
	return nil
}

func (r *MongoTutorRepo) GetByID(ctx context.Context, id string) (*models.TutorProfile, error) {
	ctx, cancel := database.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var profile models.TutorProfile
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&profile); err != nil {
		return nil, fmt.Errorf("failed to fetch tutor profile %s: %w", id, database.Translate(err))
	}
	return &profile, nil
}

func (r *MongoTutorRepo) Update(ctx context.Context, profile *models.TutorProfile) (*models.TutorProfile, error) {
	ctx, cancel := database.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	set := bson.M{
		"bio":         profile.Bio,
		"hourlyRate":  profile.HourlyRate,
		"experience":  profile.Experience,
		"subjects":    profile.Subjects,
		"isAvailable": profile.IsAvailable,
		"updatedAt":   time.Now().UTC(),
	}
	update := bson.M{"$set": set}
	if profile.CategoryID == "" {
		update["$unset"] = bson.M{"categoryId": ""}
	} else {
		set["categoryId"] = profile.CategoryID
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.TutorProfile
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"id": profile.ID}, update, opts).Decode(&updated); err != nil {
		return nil, fmt.Errorf("failed to update tutor profile %s: %w", profile.ID, database.Translate(err))
	}
	return &updated, nil
}

func (r *MongoTutorRepo) UpdateRating(ctx context.Context, tutorID string, summary models.RatingSummary) (bool, error) {
	ctx, cancel := database.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter, update := ratingUpdate(tutorID, summary, time.Now().UTC())
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to update rating for tutor %s: %w", tutorID, err)
	}
	return res.MatchedCount > 0, nil
}

// ratingUpdate never lowers totalReviews, so a slower recompute cannot
// overwrite a newer one.
func ratingUpdate(tutorID string, summary models.RatingSummary, now time.Time) (bson.M, bson.M) {
	filter := bson.M{"id": tutorID, "totalReviews": bson.M{"$lte": summary.Count}}
	update := bson.M{"$set": bson.M{
		"rating":       summary.Average,
		"totalReviews": summary.Count,
		"updatedAt":    now,
	}}
	return filter, update
}

func (r *MongoTutorRepo) ClearCategory(ctx context.Context, categoryID string) (int64, error) {
	ctx, cancel := database.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	res, err := r.coll.UpdateMany(ctx,
		bson.M{"categoryId": categoryID},
		bson.M{"$unset": bson.M{"categoryId": ""}, "$set": bson.M{"updatedAt": time.Now().UTC()}},
	)
	if err != nil {
		return 0, fmt.Errorf("failed to clear category %s: %w", categoryID, err)
	}
	return res.ModifiedCount, nil
}

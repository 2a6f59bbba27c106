package categoryRepo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"skillbridge/database"
	"skillbridge/models"
	"skillbridge/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type mongoCategoryRepo struct {
	coll *mongo.Collection
}

func NewMongoCategoryRepo(ctx context.Context, db *mongo.Database) CategoryRepository {
	repo := &mongoCategoryRepo{coll: db.Collection("categories")}
	if err := repo.ensureIndexes(ctx); err != nil {
		utils.GetLogger().Error("categories: index setup failed", zap.Error(err))
	}
	return repo
}

func (r *mongoCategoryRepo) ensureIndexes(ctx context.Context) error {
	ctx, cancel := database.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "nameKey", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
	if err != nil {
		return fmt.Errorf("failed to create category indexes: %w", err)
	}
	return nil
}

// NameKey is the case-insensitive uniqueness key of a category name.
func NameKey(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

func (r *mongoCategoryRepo) Create(ctx context.Context, category *models.Category) error {
	ctx, cancel := database.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now().UTC()
	category.NameKey = NameKey(category.Name)
	category.CreatedAt = now
	category.UpdatedAt = now
	if _, err := r.coll.InsertOne(ctx, category); err != nil {
		return fmt.Errorf("failed to create category: %w", database.Translate(err))
	}
	return nil
}

func (r *mongoCategoryRepo) GetByID(ctx context.Context, id string) (*models.Category, error) {
	ctx, cancel := database.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var category models.Category
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&category); err != nil {
		return nil, fmt.Errorf("failed to fetch category %s: %w", id, database.Translate(err))
	}
	return &category, nil
}

func (r *mongoCategoryRepo) List(ctx context.Context) ([]models.Category, error) {
	ctx, cancel := database.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer cursor.Close(ctx)

	categories := []models.Category{}
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, fmt.Errorf("failed to decode categories: %w", err)
	}
	return categories, nil
}

func (r *mongoCategoryRepo) Update(ctx context.Context, category *models.Category) (*models.Category, error) {
	ctx, cancel := database.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"name":        category.Name,
		"nameKey":     NameKey(category.Name),
		"description": category.Description,
		"updatedAt":   time.Now().UTC(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.Category
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"id": category.ID}, update, opts).Decode(&updated); err != nil {
		return nil, fmt.Errorf("failed to update category %s: %w", category.ID, database.Translate(err))
	}
	return &updated, nil
}

func (r *mongoCategoryRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := database.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete category %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return database.ErrNotFound
	}
	return nil
}

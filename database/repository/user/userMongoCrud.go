package userRepo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"skillbridge/database"
	"skillbridge/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Create inserts a new user document.
func (r *MongoUserRepo) Create(ctx context.Context, user *models.User) error {
	ctx, cancel := database.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now().UTC()
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	user.CreatedAt = now
	user.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, user); err != nil {
		return fmt.Errorf("failed to create user: %w", database.Translate(err))
	}
	return nil
}

func (r *MongoUserRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := database.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete user with id %s: %w", id, database.Translate(err))
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("failed to delete user with id %s: %w", id, database.ErrNotFound)
	}
	return nil
}

// UpdateProfile applies the non-nil fields of patch and returns the stored user.
func (r *MongoUserRepo) UpdateProfile(ctx context.Context, id string, patch ProfilePatch) (*models.User, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if patch.Name != nil {
		set["name"] = strings.TrimSpace(*patch.Name)
	}
	if patch.Phone != nil {
		set["phone"] = strings.TrimSpace(*patch.Phone)
	}
	return r.findOneAndSet(ctx, id, set)
}

func (r *MongoUserRepo) SetAvatar(ctx context.Context, id, url string) error {
	_, err := r.findOneAndSet(ctx, id, bson.M{"avatarUrl": url, "updatedAt": time.Now().UTC()})
	return err
}

func (r *MongoUserRepo) SetStatus(ctx context.Context, id string, status models.UserStatus) (*models.User, error) {
	return r.findOneAndSet(ctx, id, bson.M{"status": status, "updatedAt": time.Now().UTC()})
}

func (r *MongoUserRepo) findOneAndSet(ctx context.Context, id string, set bson.M) (*models.User, error) {
	ctx, cancel := database.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(bson.M{"passwordHash": 0})

	var user models.User
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"id": id}, bson.M{"$set": set}, opts).Decode(&user)
	if err != nil {
		return nil, fmt.Errorf("failed to update user with id %s: %w", id, database.Translate(err))
	}
	return &user, nil
}

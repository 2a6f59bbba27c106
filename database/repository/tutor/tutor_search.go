package tutorRepo

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"skillbridge/database"
	"skillbridge/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

var sortFields = map[string]string{
	"rating":     "rating",
	"price":      "hourlyRate",
	"experience": "experience",
}

// Search joins profiles with active tutor accounts and returns one page plus the total.
func (r *MongoTutorRepo) Search(ctx context.Context, criteria TutorSearchCriteria) ([]TutorSearchResult, int64, error) {
	ctx, cancel := database.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cursor, err := r.coll.Aggregate(ctx, buildSearchPipeline(criteria))
	if err != nil {
		return nil, 0, fmt.Errorf("aggregation query failed: %w", err)
	}
	defer cursor.Close(ctx)

	var page []struct {
		Items []TutorSearchResult `bson:"items"`
		Total []struct {
			N int64 `bson:"n"`
		} `bson:"total"`
	}
	if err := cursor.All(ctx, &page); err != nil {
		return nil, 0, fmt.Errorf("failed to decode tutors: %w", err)
	}
	if len(page) == 0 {
		return []TutorSearchResult{}, 0, nil
	}

	var total int64
	if len(page[0].Total) > 0 {
		total = page[0].Total[0].N
	}
	items := page[0].Items
	if items == nil {
		items = []TutorSearchResult{}
	}
	return items, total, nil
}

func buildSearchPipeline(c TutorSearchCriteria) mongo.Pipeline {
	// 1) $match on profile fields
	match := bson.M{}
	if c.CategoryID != "" {
		match["categoryId"] = c.CategoryID
	}
	if s := strings.TrimSpace(c.Subject); s != "" {
		match["subjects"] = bson.M{"$regex": "^" + regexp.QuoteMeta(s) + "$", "$options": "i"}
	}
	if c.MinRating != nil {
		match["rating"] = bson.M{"$gte": *c.MinRating}
	}
	price := bson.M{}
	if c.MinPrice != nil {
		price["$gte"] = *c.MinPrice
	}
	if c.MaxPrice != nil {
		price["$lte"] = *c.MaxPrice
	}
	if len(price) > 0 {
		match["hourlyRate"] = price
	}
	if c.IsAvailable != nil {
		match["isAvailable"] = *c.IsAvailable
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		// 2) join the owning account, hide credentials
		{{Key: "$lookup", Value: bson.M{
			"from":         "users",
			"localField":   "id",
			"foreignField": "id",
			"as":           "user",
		}}},
		{{Key: "$unwind", Value: "$user"}},
		{{Key: "$project", Value: bson.M{"user.passwordHash": 0}}},
	}

	// 3) account filters need the joined document
	userMatch := bson.M{"user.status": models.UserActive, "user.role": models.RoleTutor}
	if term := strings.TrimSpace(c.SearchTerm); term != "" {
		pattern := regexp.QuoteMeta(term)
		userMatch["$or"] = bson.A{
			bson.M{"user.name": bson.M{"$regex": pattern, "$options": "i"}},
			bson.M{"bio": bson.M{"$regex": pattern, "$options": "i"}},
			bson.M{"subjects": bson.M{"$regex": pattern, "$options": "i"}},
		}
	}
	pipeline = append(pipeline, bson.D{{Key: "$match", Value: userMatch}})

	// 4) sort, then page inside a facet so the total comes back in one round trip
	field, ok := sortFields[c.SortBy]
	if !ok {
		field = "rating"
	}
	order := 1
	if c.Descending {
		order = -1
	}
	sort := bson.D{{Key: field, Value: order}, {Key: "id", Value: 1}}

	pipeline = append(pipeline, bson.D{{Key: "$facet", Value: bson.M{
		"items": bson.A{
			bson.M{"$sort": sort},
			bson.M{"$skip": int64(c.Page-1) * int64(c.Limit)},
			bson.M{"$limit": int64(c.Limit)},
		},
		"total": bson.A{bson.M{"$count": "n"}},
	}}})
	return pipeline
}

package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"skillbridge/database"
	tutorRepo "skillbridge/database/repository/tutor"
	"skillbridge/models"
	"skillbridge/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	client      *mongo.Client
	bookingColl *mongo.Collection
	tutorColl   *mongo.Collection
}

func NewMongoBookingRepo(ctx context.Context, db *mongo.Database) BookingRepository {
	repo := &MongoBookingRepo{
		client:      db.Client(),
		bookingColl: db.Collection("bookings"),
		tutorColl:   db.Collection(tutorRepo.CollectionName),
	}
	if err := repo.ensureIndexes(ctx); err != nil {
		utils.GetLogger().Error("bookings: index setup failed", zap.Error(err))
	}
	return repo
}

func (r *MongoBookingRepo) ensureIndexes(ctx context.Context) error {
	ctx, cancel := database.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := r.bookingColl.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		// Present only while a booking is PENDING or CONFIRMED.
		{
			Keys:    bson.D{{Key: "activeSlotKey", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true).SetName("active_slot_unique"),
		},
		{Keys: bson.D{{Key: "tutorId", Value: 1}, {Key: "status", Value: 1}, {Key: "scheduledAt", Value: 1}}},
		{Keys: bson.D{{Key: "studentId", Value: 1}, {Key: "scheduledAt", Value: -1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to create booking indexes: %w", err)
	}
	return nil
}

var activeStatuses = []models.BookingStatus{models.BookingPending, models.BookingConfirmed}

func (r *MongoBookingRepo) CreateExclusive(ctx context.Context, booking *models.Booking) error {
	ctx, cancel := database.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	booking.ActiveSlotKey = models.ActiveSlotKey(booking.TutorID, booking.ScheduledAt)

	txnFn := func(sc mongo.SessionContext) error {
		// Every booking for a tutor writes the same profile document, so two
		// concurrent transactions for one tutor cannot both commit.
		res, err := r.tutorColl.UpdateOne(sc, bson.M{"id": booking.TutorID}, bson.M{"$inc": bson.M{"bookingSeq": 1}})
		if err != nil {
			return fmt.Errorf("bump booking sequence failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return database.ErrNotFound
		}

		n, err := r.bookingColl.CountDocuments(sc, overlapFilter(booking))
		if err != nil {
			return fmt.Errorf("overlap check failed: %w", err)
		}
		if n > 0 {
			return database.ErrConflict
		}

		if _, err := r.bookingColl.InsertOne(sc, booking); err != nil {
			return fmt.Errorf("insert booking failed: %w", err)
		}
		return nil
	}

	if err := database.RunInTransaction(ctx, r.client, txnFn); err != nil {
		return fmt.Errorf("booking transaction failed: %w", database.Translate(err))
	}
	return nil
}

func (r *MongoBookingRepo) Transition(ctx context.Context, id string, from []models.BookingStatus, to models.BookingStatus, at time.Time) (*models.Booking, error) {
	ctx, cancel := database.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter, update := transitionQuery(id, from, to, at)
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.Booking
	if err := r.bookingColl.FindOneAndUpdate(ctx, filter, update, opts).Decode(&updated); err != nil {
		return nil, fmt.Errorf("failed to move booking %s to %s: %w", id, to, database.Translate(err))
	}
	return &updated, nil
}

func (r *MongoBookingRepo) MarkReminderSent(ctx context.Context, id string, at time.Time) (bool, error) {
	ctx, cancel := database.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"id":             id,
		"status":         models.BookingConfirmed,
		"reminderSentAt": bson.M{"$exists": false},
	}
	res, err := r.bookingColl.UpdateOne(ctx, filter, bson.M{"$set": bson.M{"reminderSentAt": at}})
	if err != nil {
		return false, fmt.Errorf("failed to mark reminder for booking %s: %w", id, err)
	}
	return res.ModifiedCount > 0, nil
}

// overlapFilter matches active bookings of the same tutor whose
// [scheduledAt, endsAt) range intersects b's.
func overlapFilter(b *models.Booking) bson.M {
	return bson.M{
		"tutorId":     b.TutorID,
		"status":      bson.M{"$in": activeStatuses},
		"scheduledAt": bson.M{"$lt": b.EndsAt},
		"endsAt":      bson.M{"$gt": b.ScheduledAt},
	}
}

// transitionQuery only matches while the booking is still in one of from.
// Terminal states drop activeSlotKey so the time can be booked again.
func transitionQuery(id string, from []models.BookingStatus, to models.BookingStatus, at time.Time) (bson.M, bson.M) {
	set := bson.M{"status": to, "updatedAt": at}
	switch to {
	case models.BookingConfirmed:
		set["confirmedAt"] = at
	case models.BookingCompleted:
		set["completedAt"] = at
	case models.BookingCancelled:
		set["cancelledAt"] = at
	}
	update := bson.M{"$set": set}
	if to.Terminal() {
		update["$unset"] = bson.M{"activeSlotKey": ""}
	}
	return bson.M{"id": id, "status": bson.M{"$in": from}}, update
}

package audit

import (
	"context"
	"time"

	"github.com/metinatakli/movie-booking-system/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type MongoTrail struct {
	coll *mongo.Collection
}

func NewMongoTrail(db *mongo.Database) *MongoTrail {
	return &MongoTrail{
		coll: db.Collection("booking_audit"),
	}
}

type entry struct {
	Action    string    `bson:"action"`
	UserID    int64     `bson:"user_id,omitempty"`
	MovieID   int64     `bson:"movie_id,omitempty"`
	Timestamp time.Time `bson:"timestamp"`
	Data      bson.M    `bson:"data,omitempty"`
}

func (t *MongoTrail) insert(ctx context.Context, e entry) error {
	e.Timestamp = time.Now()

	_, err := t.coll.InsertOne(ctx, e)

	return err
}

func (t *MongoTrail) BookingCreated(ctx context.Context, booking domain.Booking) error {
	return t.insert(ctx, entry{
		Action:  "booking.created",
		UserID:  booking.UserID,
		MovieID: booking.MovieID,
		Data: bson.M{
			"booking_id": booking.ID,
			"reference":  booking.Reference.String(),
			"seat_count": booking.SeatCount,
		},
	})
}

func (t *MongoTrail) BookingCancelled(ctx context.Context, userID, movieID int64) error {
	return t.insert(ctx, entry{
		Action:  "booking.cancelled",
		UserID:  userID,
		MovieID: movieID,
	})
}

func (t *MongoTrail) MovieDeleted(ctx context.Context, movieID int64) error {
	return t.insert(ctx, entry{
		Action:  "movie.deleted",
		MovieID: movieID,
	})
}

package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"roomly/internal/domain/room"
)

// ErrConcurrentUpdate signals a lost version race: another writer saved a
// newer snapshot between load and save.
var ErrConcurrentUpdate = errors.New("mongo: concurrent calendar update detected")

// CalendarRepository persists calendar snapshots with an optimistic version
// check, one document per room. The calendar struct carries bson tags, so
// the document shape follows the domain model directly.
type CalendarRepository struct {
	col *mongo.Collection
}

func NewCalendarRepository(db *mongo.Database) *CalendarRepository {
	return &CalendarRepository{col: db.Collection("room_calendars")}
}

func (r *CalendarRepository) Calendar(ctx context.Context, roomID string) (*room.Calendar, error) {
	var cal room.Calendar
	if err := r.col.FindOne(ctx, bson.M{"_id": roomID}).Decode(&cal); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, room.ErrCalendarNotFound
		}
		return nil, err
	}
	return &cal, nil
}

func (r *CalendarRepository) Save(ctx context.Context, cal *room.Calendar) error {
	filter := bson.M{"_id": cal.RoomID, "version": cal.Version}
	next := *cal
	next.Version = cal.Version + 1
	opts := options.Replace().SetUpsert(true)
	res, err := r.col.ReplaceOne(ctx, filter, &next, opts)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrConcurrentUpdate
		}
		return err
	}
	if res.MatchedCount == 0 && res.UpsertedCount == 0 {
		return ErrConcurrentUpdate
	}
	cal.Version = next.Version
	return nil
}

func (r *CalendarRepository) List(ctx context.Context) ([]*room.Calendar, error) {
	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"_id": 1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []*room.Calendar
	for cur.Next(ctx) {
		var cal room.Calendar
		if err := cur.Decode(&cal); err != nil {
			return nil, err
		}
		out = append(out, &cal)
	}
	return out, cur.Err()
}

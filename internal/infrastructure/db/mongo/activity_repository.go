package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/csemotors/dealership/internal/core/domain"
)

const activityCollection = "account_activity"

// activityDoc is the stored shape: the record itself plus the write time.
type activityDoc struct {
	domain.Activity `bson:",inline"`
	RecordedAt      time.Time `bson:"recorded_at"`
}

// ActivityRepository keeps the account audit trail in MongoDB.
type ActivityRepository struct {
	coll *mongo.Collection
}

func NewActivityRepository(db *mongo.Database) *ActivityRepository {
	return &ActivityRepository{coll: db.Collection(activityCollection)}
}

// EnsureIndexes creates the index backing Recent.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(activityCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "account_id", Value: 1}, {Key: "at", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("activity indexes: %w", err)
	}
	return nil
}

// InsertActivity appends one audit record. Empty optional fields are left
// out of the document.
func (r *ActivityRepository) InsertActivity(ctx context.Context, activity *domain.Activity) error {
	doc := activityDoc{Activity: *activity, RecordedAt: time.Now().UTC()}
	doc.At = doc.At.UTC()

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}

// Recent returns up to limit records for accountID, newest first.
func (r *ActivityRepository) Recent(ctx context.Context, accountID uint, limit int) ([]domain.Activity, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "at", Value: -1}}).
		SetLimit(int64(limit))
	cur, err := r.coll.Find(ctx, bson.D{{Key: "account_id", Value: int64(accountID)}}, opts)
	if err != nil {
		return nil, fmt.Errorf("find activity: %w", err)
	}
	defer cur.Close(ctx)

	var docs []activityDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode activity: %w", err)
	}
	out := make([]domain.Activity, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.Activity)
	}
	return out, nil
}

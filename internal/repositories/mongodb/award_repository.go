package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ArowuTest/rsu-vesting/internal/models"
	"github.com/ArowuTest/rsu-vesting/internal/repositories"
)

// AwardRepository implements repositories.AwardRepository on a MongoDB collection.
// Documents carry an expires_at field so a TTL index removes them once the
// session is over. A per-session counter document numbers awards in
// submission order.
type AwardRepository struct {
	collection *mongo.Collection
	sequences  *mongo.Collection
	ttl        time.Duration
	now        func() time.Time
}

// NewAwardRepository creates a new AwardRepository
func NewAwardRepository(db *mongo.Database, ttl time.Duration) *AwardRepository {
	return &AwardRepository{
		collection: db.Collection("awards"),
		sequences:  db.Collection("award_sequences"),
		ttl:        ttl,
		now:        time.Now,
	}
}

var _ repositories.AwardRepository = (*AwardRepository)(nil)

// EnsureIndexes creates the unique (session_id, name) index and the TTL indexes.
func (r *AwardRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "session_id", Value: 1}, {Key: "name", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("session_name"),
		},
		{
			Keys:    bson.D{{Key: "session_id", Value: 1}, {Key: "seq", Value: 1}},
			Options: options.Index().SetName("session_seq"),
		},
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0).SetName("session_ttl"),
		},
	})
	if err != nil {
		return err
	}
	_, err = r.sequences.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0).SetName("session_ttl"),
	})
	return err
}

// nextSeq increments and returns the session's submission counter.
func (r *AwardRepository) nextSeq(ctx context.Context, sessionID string, expiresAt time.Time) (int64, error) {
	var counter struct {
		Seq int64 `bson:"seq"`
	}
	err := r.sequences.FindOneAndUpdate(ctx,
		bson.M{"_id": sessionID},
		bson.M{"$inc": bson.M{"seq": int64(1)}, "$set": bson.M{"expires_at": expiresAt}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&counter)
	if err != nil {
		return 0, err
	}
	return counter.Seq, nil
}

// Upsert replaces the award with the same name, keeping its created_at and
// position. The stored document is read back into award.
func (r *AwardRepository) Upsert(ctx context.Context, sessionID string, award *models.Award) error {
	now := r.now().UTC()
	expiresAt := now.Add(r.ttl)

	seq, err := r.nextSeq(ctx, sessionID, expiresAt)
	if err != nil {
		return err
	}

	filter := bson.M{"session_id": sessionID, "name": award.Name}
	update := bson.M{
		"$set": bson.M{
			"grant_date":     award.GrantDate,
			"total_value":    award.TotalValue,
			"cliff_years":    award.CliffYears,
			"duration_years": award.DurationYears,
			"variant":        award.Variant,
			"updated_at":     now,
			"expires_at":     expiresAt,
		},
		"$setOnInsert": bson.M{
			"created_at": now,
			"seq":        seq,
		},
	}

	var stored models.Award
	err = r.collection.FindOneAndUpdate(ctx, filter, update,
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&stored)
	if err != nil {
		return err
	}

	// Every award in the session shares the latest expiry.
	_, err = r.collection.UpdateMany(ctx,
		bson.M{"session_id": sessionID},
		bson.M{"$set": bson.M{"expires_at": expiresAt}},
	)
	if err != nil {
		return err
	}

	award.SessionID = sessionID
	award.Seq = stored.Seq
	award.CreatedAt = stored.CreatedAt.UTC()
	award.UpdatedAt = stored.UpdatedAt.UTC()
	return nil
}

func (r *AwardRepository) FindByName(ctx context.Context, sessionID, name string) (*models.Award, error) {
	var award models.Award
	err := r.collection.FindOne(ctx, bson.M{"session_id": sessionID, "name": name}).Decode(&award)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repositories.ErrAwardNotFound
	}
	if err != nil {
		return nil, err
	}
	return &award, nil
}

func (r *AwardRepository) FindAll(ctx context.Context, sessionID string) ([]*models.Award, error) {
	opts := options.Find().SetSort(bson.D{{Key: "seq", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{"session_id": sessionID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var awards []*models.Award
	if err := cursor.All(ctx, &awards); err != nil {
		return nil, err
	}

	// Ensure an empty slice is returned instead of nil
	if awards == nil {
		awards = []*models.Award{}
	}
	return awards, nil
}

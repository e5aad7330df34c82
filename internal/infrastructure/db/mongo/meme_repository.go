package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/memevault/meme-api/internal/core/domain"
)

const collectionMemes = "memes"

type MemeRepository struct {
	col *mongo.Collection
	seq *sequence
}

func NewMemeRepository(db *mongo.Database) *MemeRepository {
	return &MemeRepository{col: db.Collection(collectionMemes), seq: newSequence(db)}
}

// List returns all memes ordered by created_at descending, ties broken by id.
func (r *MemeRepository) List(ctx context.Context) ([]domain.Meme, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{
		{Key: "created_at", Value: -1},
		{Key: "_id", Value: -1},
	})
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list memes: %w", err)
	}
	defer cur.Close(ctx)

	memes := []domain.Meme{}
	if err := cur.All(ctx, &memes); err != nil {
		return nil, fmt.Errorf("decode memes: %w", err)
	}
	return memes, nil
}

func (r *MemeRepository) Random(ctx context.Context) (*domain.Meme, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$sample", Value: bson.D{{Key: "size", Value: 1}}}},
	}
	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("sample meme: %w", err)
	}
	defer cur.Close(ctx)

	if !cur.Next(ctx) {
		if err := cur.Err(); err != nil {
			return nil, fmt.Errorf("sample meme: %w", err)
		}
		return nil, domain.ErrNoMemes
	}
	var m domain.Meme
	if err := cur.Decode(&m); err != nil {
		return nil, fmt.Errorf("decode meme: %w", err)
	}
	return &m, nil
}

func (r *MemeRepository) FindByID(ctx context.Context, id int64) (*domain.Meme, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var m domain.Meme
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrMemeNotFound
		}
		return nil, fmt.Errorf("find meme: %w", err)
	}
	return &m, nil
}

func (r *MemeRepository) Create(ctx context.Context, meme *domain.Meme) (*domain.Meme, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := r.seq.next(ctx, collectionMemes)
	if err != nil {
		return nil, err
	}

	stored := *meme
	stored.ID = id
	// BSON datetimes carry millisecond precision.
	stored.CreatedAt = stored.CreatedAt.UTC().Truncate(time.Millisecond)
	if _, err := r.col.InsertOne(ctx, stored); err != nil {
		return nil, fmt.Errorf("insert meme: %w", err)
	}
	return &stored, nil
}

func (r *MemeRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "created_at", Value: -1}},
	})
	return err
}

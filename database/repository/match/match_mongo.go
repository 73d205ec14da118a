package matchRepo

import (
	"context"
	"fmt"
	"time"

	"studybuddy/database"
	"studybuddy/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoMatchRepo struct {
	coll *mongo.Collection
}

func NewMongoMatchRepo(ctx context.Context, db *mongo.Database) (*MongoMatchRepo, error) {
	repo := &MongoMatchRepo{coll: db.Collection(database.MatchesCollection)}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	_, err := repo.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "users", Value: 1}}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create match indexes: %w", err)
	}
	return repo, nil
}

func (r *MongoMatchRepo) Get(ctx context.Context, id string) (*models.Match, error) {
	var m models.Match
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&m); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch match %s: %w", id, err)
	}
	return &m, nil
}

func (r *MongoMatchRepo) Upsert(ctx context.Context, id string, users []string, score int, at time.Time) error {
	update := bson.M{
		"$set":         bson.M{"users": users, "score": score, "updatedAt": at},
		"$setOnInsert": bson.M{"id": id, "confirmed": false},
	}
	if _, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update, options.Update().SetUpsert(true)); err != nil {
		return fmt.Errorf("failed to upsert match %s: %w", id, err)
	}
	return nil
}

func (r *MongoMatchRepo) Confirm(ctx context.Context, id string, at time.Time) error {
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{
		"$set": bson.M{"confirmed": true, "confirmedAt": at},
	})
	if err != nil {
		return fmt.Errorf("failed to confirm match %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoMatchRepo) ListByUser(ctx context.Context, uid string) ([]models.Match, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"users": uid})
	if err != nil {
		return nil, fmt.Errorf("failed to list matches for %s: %w", uid, err)
	}
	var out []models.Match
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode matches: %w", err)
	}
	return out, nil
}

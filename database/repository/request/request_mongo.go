package requestRepo

import (
	"context"
	"fmt"
	"time"

	"studybuddy/database"
	"studybuddy/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoRequestRepo struct {
	coll *mongo.Collection
}

func NewMongoRequestRepo(ctx context.Context, db *mongo.Database) (*MongoRequestRepo, error) {
	repo := &MongoRequestRepo{coll: db.Collection(database.RequestsCollection)}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	_, err := repo.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "targetUid", Value: 1}, {Key: "status", Value: 1}}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create match request indexes: %w", err)
	}
	return repo, nil
}

func (r *MongoRequestRepo) Create(ctx context.Context, req *models.MatchRequest) (string, error) {
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	if _, err := r.coll.InsertOne(ctx, req); err != nil {
		return "", fmt.Errorf("failed to create match request: %w", err)
	}
	return req.ID, nil
}

func (r *MongoRequestRepo) GetByID(ctx context.Context, id string) (*models.MatchRequest, error) {
	var req models.MatchRequest
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&req); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch match request %s: %w", id, err)
	}
	return &req, nil
}

func (r *MongoRequestRepo) ListPendingForTarget(ctx context.Context, uid string) ([]models.MatchRequest, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"targetUid": uid, "status": models.RequestPending}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list requests for %s: %w", uid, err)
	}
	var out []models.MatchRequest
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode match requests: %w", err)
	}
	return out, nil
}

func (r *MongoRequestRepo) FindPending(ctx context.Context, requesterUID, targetUID, sessionID string) (*models.MatchRequest, error) {
	var req models.MatchRequest
	filter := bson.M{"requesterUid": requesterUID, "targetUid": targetUID, "sessionId": sessionID, "status": models.RequestPending}
	if err := r.coll.FindOne(ctx, filter).Decode(&req); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to look up pending request: %w", err)
	}
	return &req, nil
}

func (r *MongoRequestRepo) SetStatus(ctx context.Context, id, status string, at time.Time) error {
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{
		"$set": bson.M{"status": status, "respondedAt": at},
	})
	if err != nil {
		return fmt.Errorf("failed to update match request %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

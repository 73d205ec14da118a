package sessionRepo

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

type MongoSessionRepo struct {
	coll *mongo.Collection
}

func NewMongoSessionRepo(ctx context.Context, db *mongo.Database) (*MongoSessionRepo, error) {
	repo := &MongoSessionRepo{coll: db.Collection(database.SessionsCollection)}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	_, err := repo.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "course", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "creatorUid", Value: 1}}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create session indexes: %w", err)
	}
	return repo, nil
}

func (r *MongoSessionRepo) Create(ctx context.Context, s *models.StudySession) (string, error) {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if _, err := r.coll.InsertOne(ctx, s); err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}
	return s.ID, nil
}

func (r *MongoSessionRepo) GetByID(ctx context.Context, id string) (*models.StudySession, error) {
	var s models.StudySession
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&s); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch session %s: %w", id, err)
	}
	return &s, nil
}

func (r *MongoSessionRepo) ListOpen(ctx context.Context) ([]models.StudySession, error) {
	return r.find(ctx, bson.M{"status": models.SessionOpen})
}

func (r *MongoSessionRepo) ListByCreator(ctx context.Context, uid string) ([]models.StudySession, error) {
	return r.find(ctx, bson.M{"creatorUid": uid})
}

func (r *MongoSessionRepo) ListOpenByCourse(ctx context.Context, course string) ([]models.StudySession, error) {
	return r.find(ctx, bson.M{"course": course, "status": models.SessionOpen})
}

func (r *MongoSessionRepo) AddParticipant(ctx context.Context, id, uid string, at time.Time) error {
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{
		"$addToSet": bson.M{"participants": uid},
		"$set":      bson.M{"updatedAt": at},
	})
	if err != nil {
		return fmt.Errorf("failed to join session %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoSessionRepo) Update(ctx context.Context, id string, patch models.SessionPatch, at time.Time) error {
	set := bson.M{"updatedAt": at}
	for k, v := range patch.Fields() {
		set[k] = v
	}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update session %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoSessionRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.coll.DeleteOne(ctx, bson.M{"id": id}); err != nil {
		return fmt.Errorf("failed to delete session %s: %w", id, err)
	}
	return nil
}

func (r *MongoSessionRepo) find(ctx context.Context, filter bson.M) ([]models.StudySession, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	var out []models.StudySession
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode sessions: %w", err)
	}
	return out, nil
}

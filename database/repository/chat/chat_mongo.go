package chatRepo

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

type MongoChatRepo struct {
	chats    *mongo.Collection
	messages *mongo.Collection
}

func NewMongoChatRepo(ctx context.Context, db *mongo.Database) (*MongoChatRepo, error) {
	repo := &MongoChatRepo{
		chats:    db.Collection(database.ChatsCollection),
		messages: db.Collection(database.MessagesCollection),
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if _, err := repo.chats.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "members", Value: 1}, {Key: "updatedAt", Value: -1}}},
	}); err != nil {
		return nil, fmt.Errorf("failed to create chat indexes: %w", err)
	}
	if _, err := repo.messages.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "chatId", Value: 1}, {Key: "timestamp", Value: 1}},
	}); err != nil {
		return nil, fmt.Errorf("failed to create message indexes: %w", err)
	}
	return repo, nil
}

func (r *MongoChatRepo) Create(ctx context.Context, chat *models.Chat) (string, error) {
	if chat.ID == "" {
		chat.ID = uuid.NewString()
	}
	if _, err := r.chats.InsertOne(ctx, chat); err != nil {
		return "", fmt.Errorf("failed to create chat: %w", err)
	}
	return chat.ID, nil
}

func (r *MongoChatRepo) GetByID(ctx context.Context, id string) (*models.Chat, error) {
	var c models.Chat
	if err := r.chats.FindOne(ctx, bson.M{"id": id}).Decode(&c); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch chat %s: %w", id, err)
	}
	return &c, nil
}

func (r *MongoChatRepo) ListByMember(ctx context.Context, uid string) ([]models.Chat, error) {
	opts := options.Find().SetSort(bson.D{{Key: "updatedAt", Value: -1}})
	cursor, err := r.chats.Find(ctx, bson.M{"members": uid}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list chats for %s: %w", uid, err)
	}
	var out []models.Chat
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode chats: %w", err)
	}
	return out, nil
}

func (r *MongoChatRepo) FindByMembers(ctx context.Context, a, b string) (*models.Chat, error) {
	var c models.Chat
	filter := bson.M{"members": bson.M{"$all": bson.A{a, b}}}
	if err := r.chats.FindOne(ctx, filter).Decode(&c); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to look up chat for %s and %s: %w", a, b, err)
	}
	return &c, nil
}

func (r *MongoChatRepo) RemoveMember(ctx context.Context, id, uid string, at time.Time) error {
	result, err := r.chats.UpdateOne(ctx, bson.M{"id": id}, bson.M{
		"$pull": bson.M{"members": uid},
		"$set":  bson.M{"updatedAt": at},
	})
	if err != nil {
		return fmt.Errorf("failed to leave chat %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoChatRepo) AddMessage(ctx context.Context, msg *models.Message) (string, error) {
	result, err := r.chats.UpdateOne(ctx, bson.M{"id": msg.ChatID}, bson.M{
		"$set": bson.M{"updatedAt": msg.Timestamp},
	})
	if err != nil {
		return "", fmt.Errorf("failed to touch chat %s: %w", msg.ChatID, err)
	}
	if result.MatchedCount == 0 {
		return "", ErrNotFound
	}
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	if _, err := r.messages.InsertOne(ctx, msg); err != nil {
		return "", fmt.Errorf("failed to send message to chat %s: %w", msg.ChatID, err)
	}
	return msg.ID, nil
}

func (r *MongoChatRepo) ListMessages(ctx context.Context, chatID string) ([]models.Message, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}})
	cursor, err := r.messages.Find(ctx, bson.M{"chatId": chatID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages for chat %s: %w", chatID, err)
	}
	var out []models.Message
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode messages: %w", err)
	}
	return out, nil
}

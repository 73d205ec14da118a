package chatRepo

import (
	"context"
	"fmt"
	"time"

	"studybuddy/database"
	"studybuddy/models"

	"cloud.google.com/go/firestore"
)

// FirestoreChatRepo stores chats in the chats collection and messages in a
// per-chat messages subcollection.
type FirestoreChatRepo struct {
	client *firestore.Client
	coll   *firestore.CollectionRef
}

func NewFirestoreChatRepo(client *firestore.Client) *FirestoreChatRepo {
	return &FirestoreChatRepo{client: client, coll: client.Collection(database.ChatsCollection)}
}

func (r *FirestoreChatRepo) Create(ctx context.Context, chat *models.Chat) (string, error) {
	ref, _, err := r.coll.Add(ctx, chat)
	if err != nil {
		return "", fmt.Errorf("failed to create chat: %w", err)
	}
	chat.ID = ref.ID
	return ref.ID, nil
}

func (r *FirestoreChatRepo) GetByID(ctx context.Context, id string) (*models.Chat, error) {
	snap, err := r.coll.Doc(id).Get(ctx)
	if err != nil {
		if database.IsFirestoreNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch chat %s: %w", id, err)
	}
	return decodeChat(snap)
}

func (r *FirestoreChatRepo) ListByMember(ctx context.Context, uid string) ([]models.Chat, error) {
	docs, err := r.coll.Where("members", "array-contains", uid).
		OrderBy("updatedAt", firestore.Desc).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list chats for %s: %w", uid, err)
	}
	out := make([]models.Chat, 0, len(docs))
	for _, doc := range docs {
		c, err := decodeChat(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, nil
}

// FindByMembers queries on a and filters b client side; firestore allows a
// single array-contains per query.
func (r *FirestoreChatRepo) FindByMembers(ctx context.Context, a, b string) (*models.Chat, error) {
	docs, err := r.coll.Where("members", "array-contains", a).Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to look up chat for %s and %s: %w", a, b, err)
	}
	for _, doc := range docs {
		c, err := decodeChat(doc)
		if err != nil {
			return nil, err
		}
		if c.HasMember(b) {
			return c, nil
		}
	}
	return nil, nil
}

func (r *FirestoreChatRepo) RemoveMember(ctx context.Context, id, uid string, at time.Time) error {
	_, err := r.coll.Doc(id).Update(ctx, []firestore.Update{
		{Path: "members", Value: firestore.ArrayRemove(uid)},
		{Path: "updatedAt", Value: at},
	})
	if err != nil {
		if database.IsFirestoreNotFound(err) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to leave chat %s: %w", id, err)
	}
	return nil
}

func (r *FirestoreChatRepo) AddMessage(ctx context.Context, msg *models.Message) (string, error) {
	chatRef := r.coll.Doc(msg.ChatID)
	msgRef := chatRef.Collection(database.MessagesCollection).NewDoc()

	batch := r.client.Batch()
	batch.Create(msgRef, msg)
	batch.Update(chatRef, []firestore.Update{{Path: "updatedAt", Value: msg.Timestamp}})
	if _, err := batch.Commit(ctx); err != nil {
		if database.IsFirestoreNotFound(err) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("failed to send message to chat %s: %w", msg.ChatID, err)
	}
	msg.ID = msgRef.ID
	return msgRef.ID, nil
}

func (r *FirestoreChatRepo) ListMessages(ctx context.Context, chatID string) ([]models.Message, error) {
	docs, err := r.coll.Doc(chatID).Collection(database.MessagesCollection).
		OrderBy("timestamp", firestore.Asc).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list messages for chat %s: %w", chatID, err)
	}
	out := make([]models.Message, 0, len(docs))
	for _, doc := range docs {
		var m models.Message
		if err := doc.DataTo(&m); err != nil {
			return nil, fmt.Errorf("failed to decode message %s: %w", doc.Ref.ID, err)
		}
		m.ID = doc.Ref.ID
		m.ChatID = chatID
		out = append(out, m)
	}
	return out, nil
}

func decodeChat(snap *firestore.DocumentSnapshot) (*models.Chat, error) {
	var c models.Chat
	if err := snap.DataTo(&c); err != nil {
		return nil, fmt.Errorf("failed to decode chat %s: %w", snap.Ref.ID, err)
	}
	c.ID = snap.Ref.ID
	return &c, nil
}

package repository

import (
	"context"

	chatRepo "studybuddy/database/repository/chat"
	matchRepo "studybuddy/database/repository/match"
	requestRepo "studybuddy/database/repository/request"
	sessionRepo "studybuddy/database/repository/session"
	userRepo "studybuddy/database/repository/user"

	"cloud.google.com/go/firestore"
	"go.mongodb.org/mongo-driver/mongo"
)

// Re-export the repository interfaces.
type (
	UserRepository    = userRepo.UserRepository
	MatchRepository   = matchRepo.MatchRepository
	SessionRepository = sessionRepo.SessionRepository
	RequestRepository = requestRepo.RequestRepository
	ChatRepository    = chatRepo.ChatRepository
)

// Stores bundles one repository per collection for a single backing driver.
type Stores struct {
	Users    UserRepository
	Matches  MatchRepository
	Sessions SessionRepository
	Requests RequestRepository
	Chats    ChatRepository
}

// NewFirestoreStores builds every repository on a firestore client.
func NewFirestoreStores(client *firestore.Client) *Stores {
	return &Stores{
		Users:    userRepo.NewFirestoreUserRepo(client),
		Matches:  matchRepo.NewFirestoreMatchRepo(client),
		Sessions: sessionRepo.NewFirestoreSessionRepo(client),
		Requests: requestRepo.NewFirestoreRequestRepo(client),
		Chats:    chatRepo.NewFirestoreChatRepo(client),
	}
}

// NewMongoStores builds every repository on a mongo database and ensures indexes.
func NewMongoStores(ctx context.Context, db *mongo.Database) (*Stores, error) {
	users, err := userRepo.NewMongoUserRepo(ctx, db)
	if err != nil {
		return nil, err
	}
	matches, err := matchRepo.NewMongoMatchRepo(ctx, db)
	if err != nil {
		return nil, err
	}
	sessions, err := sessionRepo.NewMongoSessionRepo(ctx, db)
	if err != nil {
		return nil, err
	}
	requests, err := requestRepo.NewMongoRequestRepo(ctx, db)
	if err != nil {
		return nil, err
	}
	chats, err := chatRepo.NewMongoChatRepo(ctx, db)
	if err != nil {
		return nil, err
	}
	return &Stores{Users: users, Matches: matches, Sessions: sessions, Requests: requests, Chats: chats}, nil
}

// NewMemoryStores builds in-process repositories.
func NewMemoryStores() *Stores {
	return &Stores{
		Users:    userRepo.NewMemoryUserRepo(),
		Matches:  matchRepo.NewMemoryMatchRepo(),
		Sessions: sessionRepo.NewMemorySessionRepo(),
		Requests: requestRepo.NewMemoryRequestRepo(),
		Chats:    chatRepo.NewMemoryChatRepo(),
	}
}

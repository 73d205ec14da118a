package models

import "time"

// Chat is a conversation between matched users.
type Chat struct {
	ID        string    `json:"id" firestore:"-" bson:"id"`
	Members   []string  `json:"members" firestore:"members" bson:"members"`
	SessionID string    `json:"sessionId,omitempty" firestore:"sessionId,omitempty" bson:"sessionId,omitempty"`
	CreatedAt time.Time `json:"createdAt" firestore:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" firestore:"updatedAt" bson:"updatedAt"`
}

func (c Chat) HasMember(uid string) bool {
	for _, m := range c.Members {
		if m == uid {
			return true
		}
	}
	return false
}

// Message belongs to a chat; in firestore it lives in the chat's messages subcollection.
type Message struct {
	ID        string    `json:"id" firestore:"-" bson:"id"`
	ChatID    string    `json:"chatId" firestore:"chatId" bson:"chatId"`
	SenderUID string    `json:"senderUid" firestore:"senderUid" bson:"senderUid"`
	Text      string    `json:"text" firestore:"text" bson:"text"`
	Timestamp time.Time `json:"timestamp" firestore:"timestamp" bson:"timestamp"`
}

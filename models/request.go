package models

import "time"

const (
	RequestPending  = "pending"
	RequestAccepted = "accepted"
	RequestDeclined = "declined"
)

// MatchRequest asks the target user to study together on a session.
type MatchRequest struct {
	ID           string     `json:"id" firestore:"-" bson:"id"`
	RequesterUID string     `json:"requesterUid" firestore:"requesterUid" bson:"requesterUid"`
	TargetUID    string     `json:"targetUid" firestore:"targetUid" bson:"targetUid"`
	SessionID    string     `json:"sessionId" firestore:"sessionId" bson:"sessionId"`
	Status       string     `json:"status" firestore:"status" bson:"status"`
	CreatedAt    time.Time  `json:"createdAt" firestore:"createdAt" bson:"createdAt"`
	RespondedAt  *time.Time `json:"respondedAt,omitempty" firestore:"respondedAt,omitempty" bson:"respondedAt,omitempty"`
}

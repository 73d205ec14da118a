package models

import "time"

// Match is the persisted compatibility record for an unordered pair of users.
// Its id is the canonical pair id and Users is stored in canonical order.
type Match struct {
	MatchID     string     `json:"matchId" firestore:"-" bson:"id"`
	Users       []string   `json:"users" firestore:"users" bson:"users"`
	Score       int        `json:"score" firestore:"score" bson:"score"`
	Confirmed   bool       `json:"confirmed" firestore:"confirmed" bson:"confirmed"`
	UpdatedAt   time.Time  `json:"updatedAt" firestore:"updatedAt" bson:"updatedAt"`
	ConfirmedAt *time.Time `json:"confirmedAt,omitempty" firestore:"confirmedAt,omitempty" bson:"confirmedAt,omitempty"`
}

// Other returns the member of the pair that is not uid.
func (m Match) Other(uid string) string {
	for _, u := range m.Users {
		if u != uid {
			return u
		}
	}
	return ""
}

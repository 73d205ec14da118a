package models

import "time"

const (
	SessionOpen    = "open"
	SessionMatched = "matched"
	SessionClosed  = "closed"
)

// StudySession is a posted request for study partners in a course.
type StudySession struct {
	ID           string    `json:"id" firestore:"-" bson:"id"`
	CreatorUID   string    `json:"creatorUid" firestore:"creatorUid" bson:"creatorUid"`
	Course       string    `json:"course" firestore:"course" bson:"course"`
	Availability []string  `json:"availability" firestore:"availability" bson:"availability"`
	Notes        string    `json:"notes,omitempty" firestore:"notes,omitempty" bson:"notes,omitempty"`
	Participants []string  `json:"participants" firestore:"participants" bson:"participants"`
	Status       string    `json:"status" firestore:"status" bson:"status"`
	CreatedAt    time.Time `json:"createdAt" firestore:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt" firestore:"updatedAt" bson:"updatedAt"`
}

// HasParticipant reports whether uid already joined the session.
func (s StudySession) HasParticipant(uid string) bool {
	for _, p := range s.Participants {
		if p == uid {
			return true
		}
	}
	return false
}

// SessionPatch carries a creator's edit of a session.
type SessionPatch struct {
	Course       *string   `json:"course,omitempty"`
	Availability *[]string `json:"availability,omitempty" binding:"omitempty,min=1,dive,slot"`
	Notes        *string   `json:"notes,omitempty"`
	Status       *string   `json:"status,omitempty" binding:"omitempty,oneof=open matched closed"`
}

func (p SessionPatch) Empty() bool {
	return p.Course == nil && p.Availability == nil && p.Notes == nil && p.Status == nil
}

// Fields returns the stored field names and values the patch sets.
func (p SessionPatch) Fields() map[string]interface{} {
	f := map[string]interface{}{}
	if p.Course != nil {
		f["course"] = *p.Course
	}
	if p.Availability != nil {
		f["availability"] = *p.Availability
	}
	if p.Notes != nil {
		f["notes"] = *p.Notes
	}
	if p.Status != nil {
		f["status"] = *p.Status
	}
	return f
}

func (p SessionPatch) Apply(s *StudySession) {
	if p.Course != nil {
		s.Course = *p.Course
	}
	if p.Availability != nil {
		s.Availability = *p.Availability
	}
	if p.Notes != nil {
		s.Notes = *p.Notes
	}
	if p.Status != nil {
		s.Status = *p.Status
	}
}

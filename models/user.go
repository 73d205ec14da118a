package models

import "time"

// User is a study-partner profile keyed by the identity provider's uid.
type User struct {
	UID              string    `json:"uid" firestore:"uid" bson:"uid"`
	Name             string    `json:"name" firestore:"name" bson:"name"`
	Email            string    `json:"email,omitempty" firestore:"email,omitempty" bson:"email,omitempty"`
	Major            string    `json:"major" firestore:"major" bson:"major"`
	StudyPreferences []string  `json:"studyPreferences" firestore:"studyPreferences" bson:"studyPreferences"`
	Availability     []string  `json:"availability" firestore:"availability" bson:"availability"`
	PhotoURL         string    `json:"photoUrl,omitempty" firestore:"photoUrl,omitempty" bson:"photoUrl,omitempty"`
	FCMToken         string    `json:"-" firestore:"fcmToken,omitempty" bson:"fcmToken,omitempty"`
	CreatedAt        time.Time `json:"createdAt" firestore:"createdAt" bson:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt" firestore:"updatedAt" bson:"updatedAt"`
}

// PublicUser is what other users get to see.
type PublicUser struct {
	UID              string   `json:"uid"`
	Name             string   `json:"name"`
	Major            string   `json:"major"`
	StudyPreferences []string `json:"studyPreferences"`
	Availability     []string `json:"availability"`
	PhotoURL         string   `json:"photoUrl,omitempty"`
}

func (u User) Public() PublicUser {
	return PublicUser{
		UID:              u.UID,
		Name:             u.Name,
		Major:            u.Major,
		StudyPreferences: u.StudyPreferences,
		Availability:     u.Availability,
		PhotoURL:         u.PhotoURL,
	}
}

// UserPatch carries a partial profile update; nil fields are left alone.
type UserPatch struct {
	Name             *string   `json:"name,omitempty"`
	Major            *string   `json:"major,omitempty"`
	StudyPreferences *[]string `json:"studyPreferences,omitempty"`
	Availability     *[]string `json:"availability,omitempty" binding:"omitempty,dive,slot"`
	PhotoURL         *string   `json:"photoUrl,omitempty"`
	FCMToken         *string   `json:"fcmToken,omitempty"`
}

// Empty reports whether the patch changes nothing.
func (p UserPatch) Empty() bool {
	return p.Name == nil && p.Major == nil && p.StudyPreferences == nil &&
		p.Availability == nil && p.PhotoURL == nil && p.FCMToken == nil
}

// Fields returns the stored field names and values the patch sets.
func (p UserPatch) Fields() map[string]interface{} {
	f := map[string]interface{}{}
	if p.Name != nil {
		f["name"] = *p.Name
	}
	if p.Major != nil {
		f["major"] = *p.Major
	}
	if p.StudyPreferences != nil {
		f["studyPreferences"] = *p.StudyPreferences
	}
	if p.Availability != nil {
		f["availability"] = *p.Availability
	}
	if p.PhotoURL != nil {
		f["photoUrl"] = *p.PhotoURL
	}
	if p.FCMToken != nil {
		f["fcmToken"] = *p.FCMToken
	}
	return f
}

// Apply writes the patch onto u.
func (p UserPatch) Apply(u *User) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Major != nil {
		u.Major = *p.Major
	}
	if p.StudyPreferences != nil {
		u.StudyPreferences = *p.StudyPreferences
	}
	if p.Availability != nil {
		u.Availability = *p.Availability
	}
	if p.PhotoURL != nil {
		u.PhotoURL = *p.PhotoURL
	}
	if p.FCMToken != nil {
		u.FCMToken = *p.FCMToken
	}
}

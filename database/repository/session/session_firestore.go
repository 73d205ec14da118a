package sessionRepo

import (
	"context"
	"fmt"
	"time"

	"studybuddy/database"
	"studybuddy/models"

	"cloud.google.com/go/firestore"
)

type FirestoreSessionRepo struct {
	coll *firestore.CollectionRef
}

func NewFirestoreSessionRepo(client *firestore.Client) *FirestoreSessionRepo {
	return &FirestoreSessionRepo{coll: client.Collection(database.SessionsCollection)}
}

// Create uses s.ID as the document id when set and an auto id otherwise.
func (r *FirestoreSessionRepo) Create(ctx context.Context, s *models.StudySession) (string, error) {
	ref := r.coll.NewDoc()
	if s.ID != "" {
		ref = r.coll.Doc(s.ID)
	}
	if _, err := ref.Create(ctx, s); err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}
	s.ID = ref.ID
	return ref.ID, nil
}

func (r *FirestoreSessionRepo) GetByID(ctx context.Context, id string) (*models.StudySession, error) {
	snap, err := r.coll.Doc(id).Get(ctx)
	if err != nil {
		if database.IsFirestoreNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch session %s: %w", id, err)
	}
	return decode(snap)
}

func (r *FirestoreSessionRepo) ListOpen(ctx context.Context) ([]models.StudySession, error) {
	q := r.coll.Where("status", "==", models.SessionOpen).OrderBy("createdAt", firestore.Desc)
	return r.list(ctx, q)
}

func (r *FirestoreSessionRepo) ListByCreator(ctx context.Context, uid string) ([]models.StudySession, error) {
	q := r.coll.Where("creatorUid", "==", uid).OrderBy("createdAt", firestore.Desc)
	return r.list(ctx, q)
}

func (r *FirestoreSessionRepo) ListOpenByCourse(ctx context.Context, course string) ([]models.StudySession, error) {
	q := r.coll.Where("course", "==", course).
		Where("status", "==", models.SessionOpen).
		OrderBy("createdAt", firestore.Desc)
	return r.list(ctx, q)
}

func (r *FirestoreSessionRepo) AddParticipant(ctx context.Context, id, uid string, at time.Time) error {
	_, err := r.coll.Doc(id).Update(ctx, []firestore.Update{
		{Path: "participants", Value: firestore.ArrayUnion(uid)},
		{Path: "updatedAt", Value: at},
	})
	if err != nil {
		if database.IsFirestoreNotFound(err) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to join session %s: %w", id, err)
	}
	return nil
}

func (r *FirestoreSessionRepo) Update(ctx context.Context, id string, patch models.SessionPatch, at time.Time) error {
	updates := []firestore.Update{{Path: "updatedAt", Value: at}}
	for path, value := range patch.Fields() {
		updates = append(updates, firestore.Update{Path: path, Value: value})
	}
	if _, err := r.coll.Doc(id).Update(ctx, updates); err != nil {
		if database.IsFirestoreNotFound(err) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to update session %s: %w", id, err)
	}
	return nil
}

func (r *FirestoreSessionRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.coll.Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete session %s: %w", id, err)
	}
	return nil
}

func (r *FirestoreSessionRepo) list(ctx context.Context, q firestore.Query) ([]models.StudySession, error) {
	docs, err := q.Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	out := make([]models.StudySession, 0, len(docs))
	for _, doc := range docs {
		s, err := decode(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, *s)
	}
	return out, nil
}

func decode(snap *firestore.DocumentSnapshot) (*models.StudySession, error) {
	var s models.StudySession
	if err := snap.DataTo(&s); err != nil {
		return nil, fmt.Errorf("failed to decode session %s: %w", snap.Ref.ID, err)
	}
	s.ID = snap.Ref.ID
	return &s, nil
}

package matchRepo

import (
	"context"
	"fmt"
	"time"

	"studybuddy/database"
	"studybuddy/models"

	"cloud.google.com/go/firestore"
)

type FirestoreMatchRepo struct {
	coll *firestore.CollectionRef
}

func NewFirestoreMatchRepo(client *firestore.Client) *FirestoreMatchRepo {
	return &FirestoreMatchRepo{coll: client.Collection(database.MatchesCollection)}
}

func (r *FirestoreMatchRepo) Get(ctx context.Context, id string) (*models.Match, error) {
	snap, err := r.coll.Doc(id).Get(ctx)
	if err != nil {
		if database.IsFirestoreNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch match %s: %w", id, err)
	}
	var m models.Match
	if err := snap.DataTo(&m); err != nil {
		return nil, fmt.Errorf("failed to decode match %s: %w", id, err)
	}
	m.MatchID = snap.Ref.ID
	return &m, nil
}

// Upsert merges only the scoring fields so a prior confirmation survives.
// An absent confirmed field decodes as false.
func (r *FirestoreMatchRepo) Upsert(ctx context.Context, id string, users []string, score int, at time.Time) error {
	data := map[string]interface{}{
		"users":     users,
		"score":     score,
		"updatedAt": at,
	}
	if _, err := r.coll.Doc(id).Set(ctx, data, firestore.MergeAll); err != nil {
		return fmt.Errorf("failed to upsert match %s: %w", id, err)
	}
	return nil
}

func (r *FirestoreMatchRepo) Confirm(ctx context.Context, id string, at time.Time) error {
	_, err := r.coll.Doc(id).Update(ctx, []firestore.Update{
		{Path: "confirmed", Value: true},
		{Path: "confirmedAt", Value: at},
	})
	if err != nil {
		if database.IsFirestoreNotFound(err) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to confirm match %s: %w", id, err)
	}
	return nil
}

func (r *FirestoreMatchRepo) ListByUser(ctx context.Context, uid string) ([]models.Match, error) {
	docs, err := r.coll.Where("users", "array-contains", uid).Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list matches for %s: %w", uid, err)
	}
	out := make([]models.Match, 0, len(docs))
	for _, doc := range docs {
		var m models.Match
		if err := doc.DataTo(&m); err != nil {
			return nil, fmt.Errorf("failed to decode match %s: %w", doc.Ref.ID, err)
		}
		m.MatchID = doc.Ref.ID
		out = append(out, m)
	}
	return out, nil
}

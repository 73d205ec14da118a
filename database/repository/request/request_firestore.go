package requestRepo

import (
	"context"
	"fmt"
	"time"

	"studybuddy/database"
	"studybuddy/models"

	"cloud.google.com/go/firestore"
)

type FirestoreRequestRepo struct {
	coll *firestore.CollectionRef
}

func NewFirestoreRequestRepo(client *firestore.Client) *FirestoreRequestRepo {
	return &FirestoreRequestRepo{coll: client.Collection(database.RequestsCollection)}
}

func (r *FirestoreRequestRepo) Create(ctx context.Context, req *models.MatchRequest) (string, error) {
	ref, _, err := r.coll.Add(ctx, req)
	if err != nil {
		return "", fmt.Errorf("failed to create match request: %w", err)
	}
	req.ID = ref.ID
	return ref.ID, nil
}

func (r *FirestoreRequestRepo) GetByID(ctx context.Context, id string) (*models.MatchRequest, error) {
	snap, err := r.coll.Doc(id).Get(ctx)
	if err != nil {
		if database.IsFirestoreNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch match request %s: %w", id, err)
	}
	return decode(snap)
}

func (r *FirestoreRequestRepo) ListPendingForTarget(ctx context.Context, uid string) ([]models.MatchRequest, error) {
	docs, err := r.coll.Where("targetUid", "==", uid).
		Where("status", "==", models.RequestPending).
		OrderBy("createdAt", firestore.Asc).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list requests for %s: %w", uid, err)
	}
	out := make([]models.MatchRequest, 0, len(docs))
	for _, doc := range docs {
		req, err := decode(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, *req)
	}
	return out, nil
}

func (r *FirestoreRequestRepo) FindPending(ctx context.Context, requesterUID, targetUID, sessionID string) (*models.MatchRequest, error) {
	docs, err := r.coll.Where("requesterUid", "==", requesterUID).
		Where("targetUid", "==", targetUID).
		Where("sessionId", "==", sessionID).
		Where("status", "==", models.RequestPending).
		Limit(1).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to look up pending request: %w", err)
	}
	if len(docs) == 0 {
		return nil, nil
	}
	return decode(docs[0])
}

func (r *FirestoreRequestRepo) SetStatus(ctx context.Context, id, status string, at time.Time) error {
	_, err := r.coll.Doc(id).Update(ctx, []firestore.Update{
		{Path: "status", Value: status},
		{Path: "respondedAt", Value: at},
	})
	if err != nil {
		if database.IsFirestoreNotFound(err) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to update match request %s: %w", id, err)
	}
	return nil
}

func decode(snap *firestore.DocumentSnapshot) (*models.MatchRequest, error) {
	var req models.MatchRequest
	if err := snap.DataTo(&req); err != nil {
		return nil, fmt.Errorf("failed to decode match request %s: %w", snap.Ref.ID, err)
	}
	req.ID = snap.Ref.ID
	return &req, nil
}

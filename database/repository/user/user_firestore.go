package userRepo

import (
	"context"
	"fmt"
	"time"

	"studybuddy/database"
	"studybuddy/models"

	"cloud.google.com/go/firestore"
)

// FirestoreUserRepo implements UserRepository on the users collection.
type FirestoreUserRepo struct {
	coll *firestore.CollectionRef
}

func NewFirestoreUserRepo(client *firestore.Client) *FirestoreUserRepo {
	return &FirestoreUserRepo{coll: client.Collection(database.UsersCollection)}
}

func (r *FirestoreUserRepo) GetByID(ctx context.Context, uid string) (*models.User, error) {
	snap, err := r.coll.Doc(uid).Get(ctx)
	if err != nil {
		if database.IsFirestoreNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch user %s: %w", uid, err)
	}
	var u models.User
	if err := snap.DataTo(&u); err != nil {
		return nil, fmt.Errorf("failed to decode user %s: %w", uid, err)
	}
	u.UID = snap.Ref.ID
	return &u, nil
}

func (r *FirestoreUserRepo) GetAll(ctx context.Context) ([]models.User, error) {
	docs, err := r.coll.Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve users: %w", err)
	}
	users := make([]models.User, 0, len(docs))
	for _, doc := range docs {
		var u models.User
		if err := doc.DataTo(&u); err != nil {
			return nil, fmt.Errorf("failed to decode user %s: %w", doc.Ref.ID, err)
		}
		u.UID = doc.Ref.ID
		users = append(users, u)
	}
	return users, nil
}

func (r *FirestoreUserRepo) Save(ctx context.Context, user *models.User) error {
	if _, err := r.coll.Doc(user.UID).Set(ctx, user); err != nil {
		return fmt.Errorf("failed to save user %s: %w", user.UID, err)
	}
	return nil
}

func (r *FirestoreUserRepo) Update(ctx context.Context, uid string, patch models.UserPatch, at time.Time) error {
	updates := []firestore.Update{{Path: "updatedAt", Value: at}}
	for path, value := range patch.Fields() {
		updates = append(updates, firestore.Update{Path: path, Value: value})
	}
	if _, err := r.coll.Doc(uid).Update(ctx, updates); err != nil {
		if database.IsFirestoreNotFound(err) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to update user %s: %w", uid, err)
	}
	return nil
}

func (r *FirestoreUserRepo) Delete(ctx context.Context, uid string) error {
	if _, err := r.coll.Doc(uid).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete user %s: %w", uid, err)
	}
	return nil
}

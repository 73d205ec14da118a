// Command seed loads sample users, study sessions and a match into the
// configured store.
package main

import (
	"context"
	"fmt"
	"time"

	"studybuddy/config"
	"studybuddy/database"
	"studybuddy/database/repository"
	"studybuddy/models"
	"studybuddy/services/matching"
	"studybuddy/utils"

	"go.uber.org/zap"
)

func sampleUsers(now time.Time) []models.User {
	return []models.User{
		{
			UID: "user1", Name: "Alice Johnson", Email: "alice@example.com", Major: "Computer Science",
			StudyPreferences: []string{"quiet", "group"},
			Availability:     []string{"Mon 14:00-16:00", "Wed 10:00-12:00"},
			CreatedAt:        now, UpdatedAt: now,
		},
		{
			UID: "user2", Name: "Bob Smith", Email: "bob@example.com", Major: "Computer Science",
			StudyPreferences: []string{"group"},
			Availability:     []string{"Mon 15:00-17:00", "Thu 09:00-11:00"},
			CreatedAt:        now, UpdatedAt: now,
		},
		{
			UID: "user3", Name: "Charlie Lee", Email: "charlie@example.com", Major: "Mathematics",
			StudyPreferences: []string{"quiet"},
			Availability:     []string{"Tue 10:00-12:00", "Wed 14:00-16:00"},
			CreatedAt:        now, UpdatedAt: now,
		},
	}
}

func sampleSessions(now time.Time) []models.StudySession {
	return []models.StudySession{
		{
			ID: "session1", CreatorUID: "user1", Course: "CS101",
			Availability: []string{"Mon 14:00-16:00", "Wed 10:00-12:00"},
			Participants: []string{"user1"}, Status: models.SessionOpen,
			Notes: "Focus on Chapter 3", CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: "session2", CreatorUID: "user2", Course: "CS101",
			Availability: []string{"Mon 15:00-17:00", "Thu 09:00-11:00"},
			Participants: []string{"user2"}, Status: models.SessionOpen,
			Notes: "Review algorithms", CreatedAt: now, UpdatedAt: now,
		},
	}
}

// seed writes the sample data. Existing sessions are left untouched so the
// command can be re-run.
func seed(ctx context.Context, stores *repository.Stores, now time.Time, logger *zap.Logger) error {
	logger.Info("Seeding users...")
	for _, u := range sampleUsers(now) {

		if err := stores.Users.Save(ctx, &u); err != nil {
			return fmt.Errorf("seed user %s: %w", u.UID, err)
		}
		logger.Info("Created user", zap.String("name", u.Name))
	}

	logger.Info("Seeding study sessions...")
	for _, s := range sampleSessions(now) {

		existing, err := stores.Sessions.GetByID(ctx, s.ID)
		if err != nil {
			return fmt.Errorf("seed session %s: %w", s.ID, err)
		}
		if existing != nil {
			logger.Info("Session already present", zap.String("id", s.ID))
			continue
		}
		if _, err := stores.Sessions.Create(ctx, &s); err != nil {
			return fmt.Errorf("seed session %s: %w", s.ID, err)
		}
		logger.Info("Created session", zap.String("id", s.ID))
	}

	logger.Info("Seeding matches...")
	id := matching.CanonicalMatchID("user1", "user2")
	if err := stores.Matches.Upsert(ctx, id, []string{"user1", "user2"}, 70, now); err != nil {
		return fmt.Errorf("seed match %s: %w", id, err)
	}
	logger.Info("Created match", zap.String("id", id))
	return nil
}

func main() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger := utils.GetLogger()
	defer logger.Sync()
	ctx := context.Background()

	var stores *repository.Stores
	switch cfg.DBDriver {
	case config.DriverFirestore:
		fb, err := utils.InitFirebase(ctx, cfg)
		if err != nil {
			logger.Fatal("seed: firebase init failed", zap.Error(err))
		}
		defer fb.Close()
		stores = repository.NewFirestoreStores(fb.Firestore)
	case config.DriverMongo:
		client, err := database.ConnectMongo(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Fatal("seed: mongo connection failed", zap.Error(err))
		}
		defer client.Disconnect(ctx)
		stores, err = repository.NewMongoStores(ctx, client.Database(cfg.DatabaseName))
		if err != nil {
			logger.Fatal("seed: mongo setup failed", zap.Error(err))
		}
	default:
		logger.Fatal("seed: DB_DRIVER must be firestore or mongo", zap.String("driver", cfg.DBDriver))
	}

	if err := seed(ctx, stores, time.Now().UTC(), logger); err != nil {
		logger.Fatal("Seeding failed", zap.Error(err))
	}
	logger.Info("Seeding completed")
}

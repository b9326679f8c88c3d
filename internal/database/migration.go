package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"emphub/internal/repository"
	"emphub/pkg/logger"
)

const migrationsCollection = "migrations"

type Migration struct {
	Name      string    `bson:"name"`
	AppliedAt time.Time `bson:"applied_at"`
}

type MigrationFunc func(ctx context.Context, db *mongo.Database) error

// MigrationService applies named, run-once changes to the database and
// records them in the migrations collection.
type MigrationService struct {
	db     *mongo.Database
	logger logger.Logger
	now    func() time.Time
}

func NewMigrationService(db *mongo.Database, logger logger.Logger) *MigrationService {
	return &MigrationService{
		db:     db,
		logger: logger,
		now:    time.Now,
	}
}

func (m *MigrationService) IsMigrationApplied(ctx context.Context, name string) (bool, error) {
	err := m.db.Collection(migrationsCollection).FindOne(ctx, bson.D{{Key: "name", Value: name}}).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		m.logger.Error("Migration status check failed", map[string]interface{}{"name": name, "error": err.Error()})
		return false, err
	}
	return true, nil
}

func (m *MigrationService) RecordMigration(ctx context.Context, name string) error {
	_, err := m.db.Collection(migrationsCollection).InsertOne(ctx, Migration{Name: name, AppliedAt: m.now().UTC()})
	if err != nil {
		m.logger.Error("Migration record failed", map[string]interface{}{"name": name, "error": err.Error()})
		return err
	}
	return nil
}

func (m *MigrationService) ApplyMigration(ctx context.Context, name string, fn MigrationFunc) error {
	applied, err := m.IsMigrationApplied(ctx, name)
	if err != nil {
		return err
	}
	if applied {
		m.logger.Debug("Migration already applied", map[string]interface{}{"name": name})
		return nil
	}

	m.logger.Info("Applying migration", map[string]interface{}{"name": name})
	if err := fn(ctx, m.db); err != nil {
		m.logger.Error("Migration failed", map[string]interface{}{"name": name, "error": err.Error()})
		return err
	}

	return m.RecordMigration(ctx, name)
}

func (m *MigrationService) RunMigrations(ctx context.Context) error {
	migrations := []struct {
		Name string
		Func MigrationFunc
	}{
		{"users_username_unique", uniqueIndex(repository.UsersCollection, "username", "users_username_unique")},
		{"users_email_unique", uniqueIndex(repository.UsersCollection, "email", "users_email_unique")},
		{"employees_email_unique", uniqueIndex(repository.EmployeesCollection, "email", "employees_email_unique")},
	}

	for _, migration := range migrations {
		err := m.ApplyMigration(ctx, migration.Name, migration.Func)
		if err == nil {
			continue
		}
		// existing documents already violate the index; it stays unrecorded
		// and is retried on the next start once the data is cleaned up
		if mongo.IsDuplicateKeyError(err) {
			m.logger.Warn("Unique index skipped, existing documents contain duplicates", map[string]interface{}{
				"name":  migration.Name,
				"error": err.Error(),
			})
			continue
		}
		return fmt.Errorf("migration %s: %w", migration.Name, err)
	}

	return nil
}

// uniqueIndex fails if existing documents already violate the constraint.
func uniqueIndex(collection, field, name string) MigrationFunc {
	return func(ctx context.Context, db *mongo.Database) error {
		_, err := db.Collection(collection).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: field, Value: 1}},
			Options: options.Index().SetUnique(true).SetName(name),
		})
		return err
	}
}

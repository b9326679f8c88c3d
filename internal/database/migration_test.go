package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"emphub/pkg/logger"
)

func TestMigrationService(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("applies pending migration once", func(mt *mtest.T) {
		svc := NewMigrationService(mt.DB, logger.Nop())
		ns := mt.DB.Name() + "." + migrationsCollection

		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch),
			mtest.CreateSuccessResponse(),
			mtest.CreateSuccessResponse(),
		)

		calls := 0
		err := svc.ApplyMigration(ctx, "x", func(context.Context, *mongo.Database) error {
			calls++
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 1, calls)
	})

	mt.Run("skips applied migration", func(mt *mtest.T) {
		svc := NewMigrationService(mt.DB, logger.Nop())
		ns := mt.DB.Name() + "." + migrationsCollection

		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{{Key: "name", Value: "x"}}))

		err := svc.ApplyMigration(ctx, "x", func(context.Context, *mongo.Database) error {
			t.Fatal("migration must not run twice")
			return nil
		})
		require.NoError(t, err)
	})

	mt.Run("duplicates in existing data skip the index", func(mt *mtest.T) {
		svc := NewMigrationService(mt.DB, logger.Nop())
		ns := mt.DB.Name() + "." + migrationsCollection

		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch),
			mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 11000, Message: "E11000 duplicate key error"}),
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch),
			mtest.CreateSuccessResponse(),
			mtest.CreateSuccessResponse(),
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch),
			mtest.CreateSuccessResponse(),
			mtest.CreateSuccessResponse(),
		)

		require.NoError(t, svc.RunMigrations(ctx))
	})

	mt.Run("other index failures stop the run", func(mt *mtest.T) {
		svc := NewMigrationService(mt.DB, logger.Nop())
		ns := mt.DB.Name() + "." + migrationsCollection

		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch),
			mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 13, Name: "Unauthorized", Message: "not authorized"}),
		)

		err := svc.RunMigrations(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "users_username_unique")
	})
}

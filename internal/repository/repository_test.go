package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"emphub/internal/domain"
	"emphub/pkg/logger"
)

func employeeDoc(id primitive.ObjectID, email string) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "first_name", Value: "Ada"},
		{Key: "last_name", Value: "Lovelace"},
		{Key: "email", Value: email},
		{Key: "position", Value: "Engineer"},
		{Key: "salary", Value: 50000.0},
		{Key: "date_of_joining", Value: time.Date(2023, 8, 1, 0, 0, 0, 0, time.UTC)},
		{Key: "department", Value: "R&D"},
	}
}

func TestEmployeeRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("find all", func(mt *mtest.T) {
		repo := NewEmployeeRepository(mt.DB, logger.Nop())
		first, second := primitive.NewObjectID(), primitive.NewObjectID()
		ns := mt.DB.Name() + "." + EmployeesCollection

		mt.AddMockResponses(
			mtest.CreateCursorResponse(1, ns, mtest.FirstBatch, employeeDoc(first, "a@x.io")),
			mtest.CreateCursorResponse(0, ns, mtest.NextBatch, employeeDoc(second, "b@x.io")),
		)

		employees, err := repo.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, employees, 2)
		assert.Equal(t, first.Hex(), employees[0].ID)
		assert.Equal(t, "b@x.io", employees[1].Email)
		assert.Equal(t, 50000.0, employees[0].Salary)
		assert.Equal(t, time.Date(2023, 8, 1, 0, 0, 0, 0, time.UTC), employees[0].DateOfJoining)
	})

	mt.Run("find by id hit", func(mt *mtest.T) {
		repo := NewEmployeeRepository(mt.DB, logger.Nop())
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, mt.DB.Name()+"."+EmployeesCollection, mtest.FirstBatch, employeeDoc(id, "a@x.io")))

		employee, err := repo.FindByID(ctx, id.Hex())
		require.NoError(t, err)
		require.NotNil(t, employee)
		assert.Equal(t, id.Hex(), employee.ID)
		assert.Equal(t, "Ada", employee.FirstName)
	})

	mt.Run("find by id miss", func(mt *mtest.T) {
		repo := NewEmployeeRepository(mt.DB, logger.Nop())
		mt.AddMockResponses(mtest.CreateCursorResponse(0, mt.DB.Name()+"."+EmployeesCollection, mtest.FirstBatch))

		employee, err := repo.FindByID(ctx, primitive.NewObjectID().Hex())
		require.NoError(t, err)
		assert.Nil(t, employee)
	})

	mt.Run("malformed id never reaches the server", func(mt *mtest.T) {
		repo := NewEmployeeRepository(mt.DB, logger.Nop())

		employee, err := repo.FindByID(ctx, "abc")
		require.NoError(t, err)
		assert.Nil(t, employee)
		assert.False(t, repo.ValidID("abc"))
		assert.True(t, repo.ValidID(primitive.NewObjectID().Hex()))
	})

	mt.Run("create assigns id", func(mt *mtest.T) {
		repo := NewEmployeeRepository(mt.DB, logger.Nop())
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		employee := &domain.Employee{FirstName: "Ada", Email: "a@x.io"}
		require.NoError(t, repo.Create(ctx, employee))
		assert.True(t, primitive.IsValidObjectID(employee.ID))
	})

	mt.Run("create duplicate email", func(mt *mtest.T) {
		repo := NewEmployeeRepository(mt.DB, logger.Nop())
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error",
		}))

		err := repo.Create(ctx, &domain.Employee{Email: "a@x.io"})
		assert.ErrorIs(t, err, domain.ErrDuplicateKey)
	})

	mt.Run("update reports matched count", func(mt *mtest.T) {
		repo := NewEmployeeRepository(mt.DB, logger.Nop())
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))

		position := "Lead"
		matched, err := repo.Update(ctx, primitive.NewObjectID().Hex(), domain.EmployeeChanges{Position: &position, UpdatedAt: time.Now()})
		require.NoError(t, err)
		assert.Equal(t, int64(1), matched)
	})

	mt.Run("delete reports deleted count", func(mt *mtest.T) {
		repo := NewEmployeeRepository(mt.DB, logger.Nop())
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		deleted, err := repo.Delete(ctx, primitive.NewObjectID().Hex())
		require.NoError(t, err)
		assert.Equal(t, int64(0), deleted)
	})

	mt.Run("server error is surfaced", func(mt *mtest.T) {
		repo := NewEmployeeRepository(mt.DB, logger.Nop())
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 2, Message: "boom"}))

		_, err := repo.FindByEmail(ctx, "a@x.io")
		require.Error(t, err)
		assert.NotErrorIs(t, err, domain.ErrDuplicateKey)
	})
}

func TestUserRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("find by username or email", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB, logger.Nop())
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, mt.DB.Name()+"."+UsersCollection, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: id},
			{Key: "username", Value: "ada"},
			{Key: "email", Value: "ada@x.io"},
			{Key: "password", Value: "digest"},
		}))

		user, err := repo.FindByUsernameOrEmail(ctx, "", "ada@x.io")
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, id.Hex(), user.ID)
		assert.Equal(t, "digest", user.PasswordHash)
	})

	mt.Run("no keys matches nothing", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB, logger.Nop())

		user, err := repo.FindByUsernameOrEmail(ctx, "", "")
		require.NoError(t, err)
		assert.Nil(t, user)
	})

	mt.Run("create duplicate", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB, logger.Nop())
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{Code: 11000, Message: "dup"}))

		err := repo.Create(ctx, &domain.User{Username: "ada", Email: "ada@x.io"})
		assert.ErrorIs(t, err, domain.ErrDuplicateKey)
	})
}

func TestChangesToSet_OnlyPresentFields(t *testing.T) {
	salary := 72000.0
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	set := changesToSet(domain.EmployeeChanges{Salary: &salary, UpdatedAt: now})

	assert.Equal(t, bson.D{
		{Key: "salary", Value: 72000.0},
		{Key: "updated_at", Value: now},
	}, set)
}

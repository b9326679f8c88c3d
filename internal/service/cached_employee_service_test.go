package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"emphub/internal/domain"
	"emphub/internal/repository/memory"
	"emphub/pkg/cache"
	"emphub/pkg/logger"
)

// countingStore counts primary-key lookups reaching the store.
type countingStore struct {
	*memory.EmployeeStore
	finds int
}

func (c *countingStore) FindByID(ctx context.Context, id string) (*domain.Employee, error) {
	c.finds++
	return c.EmployeeStore.FindByID(ctx, id)
}

func newCachedService(t *testing.T) (*CachedEmployeeService, *countingStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := &countingStore{EmployeeStore: memory.NewEmployeeStore()}
	inner, _ := newEmployeeService(store)
	manager := cache.NewManager(cache.NewRedisCache(client, logger.Nop(), "emphub"), logger.Nop())
	return NewCachedEmployeeService(inner, manager, time.Minute, logger.Nop()), store, mr
}

func TestCachedEmployeeService_ReadThrough(t *testing.T) {
	ctx := context.Background()
	svc, store, mr := newCachedService(t)

	id, err := svc.CreateEmployee(ctx, validInput())
	require.NoError(t, err)

	first, err := svc.GetEmployee(ctx, id)
	require.NoError(t, err)
	second, err := svc.GetEmployee(ctx, id)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, store.finds)
	assert.True(t, mr.Exists("emphub:"+cache.EmployeeCacheKey(id)))
	assert.Equal(t, 50000.0, second.Salary)
}

func TestCachedEmployeeService_UpdateInvalidates(t *testing.T) {
	ctx := context.Background()
	svc, _, mr := newCachedService(t)

	id, err := svc.CreateEmployee(ctx, validInput())
	require.NoError(t, err)
	_, err = svc.GetEmployee(ctx, id)
	require.NoError(t, err)

	require.NoError(t, svc.UpdateEmployee(ctx, id, domain.EmployeePatch{Position: strPtr("Lead")}))
	assert.False(t, mr.Exists("emphub:"+cache.EmployeeCacheKey(id)))

	view, err := svc.GetEmployee(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Lead", view.Position)
}

func TestCachedEmployeeService_DeleteInvalidates(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newCachedService(t)

	id, err := svc.CreateEmployee(ctx, validInput())
	require.NoError(t, err)
	_, err = svc.GetEmployee(ctx, id)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteEmployee(ctx, id))

	_, err = svc.GetEmployee(ctx, id)
	assertKind(t, err, domain.KindNotFound, domain.MsgEmployeeNotFound)
}

func TestCachedEmployeeService_ErrorsAreNotCached(t *testing.T) {
	ctx := context.Background()
	svc, _, mr := newCachedService(t)

	_, err := svc.GetEmployee(ctx, "bad")
	assertKind(t, err, domain.KindValidation, domain.MsgInvalidEmployeeID)
	assert.Empty(t, mr.Keys())
}

func TestCachedEmployeeService_CacheOutageIsTransparent(t *testing.T) {
	ctx := context.Background()
	svc, store, mr := newCachedService(t)

	id, err := svc.CreateEmployee(ctx, validInput())
	require.NoError(t, err)
	mr.Close()

	view, err := svc.GetEmployee(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, view.EmployeeID)
	assert.Equal(t, 1, store.finds)

	require.NoError(t, svc.DeleteEmployee(ctx, id))
}

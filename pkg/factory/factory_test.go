package factory

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"emphub/internal/config"
	"emphub/internal/service"
)

func memoryConfig(t *testing.T, redisAddr string) *config.Config {
	t.Helper()
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("REDIS_ADDR", redisAddr)
	cfg, err := config.FromViper(viper.New())
	require.NoError(t, err)
	return cfg
}

func TestNew_MemoryStoreWithCache(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)

	f, err := New(ctx, memoryConfig(t, mr.Addr()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close(ctx) })

	assert.IsType(t, &service.CachedEmployeeService{}, f.GetEmployeeService())
	assert.IsType(t, &service.AccountService{}, f.GetAccountService())

	handler := f.Handler()
	body := `{"first_name":"A","last_name":"B","email":"a@b.com","position":"Eng","salary":50000,"date_of_joining":"2024-01-01","department":"R&D"}`
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/emp/employees", strings.NewReader(body)))
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"redis"`)
}

func TestNew_UnreachableRedisDisablesCache(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	f, err := New(ctx, memoryConfig(t, addr))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close(ctx) })

	assert.IsType(t, &service.EmployeeService{}, f.GetEmployeeService())
}

func TestNew_RejectsUnknownHasher(t *testing.T) {
	cfg := memoryConfig(t, "")
	cfg.Security.PasswordHasher = "md5"

	_, err := New(context.Background(), cfg)
	assert.Error(t, err)
}

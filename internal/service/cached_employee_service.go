package service

import (
	"context"
	"time"

	"emphub/internal/domain"
	"emphub/pkg/cache"
	"emphub/pkg/logger"
)

// CachedEmployeeService wraps an EmployeeService with a read-through cache of
// single-employee views.
type CachedEmployeeService struct {
	next   domain.EmployeeService
	cache  *cache.Manager
	ttl    time.Duration
	logger logger.Logger
}

func NewCachedEmployeeService(
	next domain.EmployeeService,
	cacheManager *cache.Manager,
	ttl time.Duration,
	logger logger.Logger,
) *CachedEmployeeService {
	if ttl <= 0 {
		ttl = cache.DefaultExpiration
	}
	return &CachedEmployeeService{
		next:   next,
		cache:  cacheManager,
		ttl:    ttl,
		logger: logger,
	}
}

func (s *CachedEmployeeService) ListEmployees(ctx context.Context) ([]domain.EmployeeView, error) {
	return s.next.ListEmployees(ctx)
}

func (s *CachedEmployeeService) CreateEmployee(ctx context.Context, in domain.EmployeeInput) (string, error) {
	return s.next.CreateEmployee(ctx, in)
}

func (s *CachedEmployeeService) GetEmployee(ctx context.Context, id string) (*domain.EmployeeView, error) {
	var view domain.EmployeeView
	err := s.cache.ReadThrough(ctx, cache.EmployeeCacheKey(id), &view, func() (interface{}, error) {
		return s.next.GetEmployee(ctx, id)
	}, s.ttl)
	if err != nil {
		return nil, err
	}
	return &view, nil
}

func (s *CachedEmployeeService) UpdateEmployee(ctx context.Context, id string, patch domain.EmployeePatch) error {
	if err := s.next.UpdateEmployee(ctx, id, patch); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, cache.EmployeeCacheKey(id))
	return nil
}

func (s *CachedEmployeeService) DeleteEmployee(ctx context.Context, id string) error {
	if err := s.next.DeleteEmployee(ctx, id); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, cache.EmployeeCacheKey(id))
	return nil
}

var _ domain.EmployeeService = (*CachedEmployeeService)(nil)

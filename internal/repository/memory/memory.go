// Package memory holds process-local record stores used when no database is
// configured and by service tests. Identifiers use the same 24-hex form as
// the Mongo store.
package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"emphub/internal/domain"
)

type Option func(*options)

type options struct {
	uniqueEmail bool
}

// WithUniqueEmail makes the store reject duplicate emails (and, for users,
// usernames) the way the Mongo unique indexes do.
func WithUniqueEmail() Option {
	return func(o *options) { o.uniqueEmail = true }
}

type UserStore struct {
	mu    sync.RWMutex
	users []*domain.User
	opts  options
}

func NewUserStore(opts ...Option) *UserStore {
	s := &UserStore{}
	for _, opt := range opts {
		opt(&s.opts)
	}
	return s
}

func (s *UserStore) FindByUsernameOrEmail(_ context.Context, username, email string) (*domain.User, error) {
	if username == "" && email == "" {
		return nil, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if (username != "" && u.Username == username) || (email != "" && u.Email == email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *UserStore) Create(_ context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.opts.uniqueEmail {
		for _, u := range s.users {
			if u.Username == user.Username || u.Email == user.Email {
				return fmt.Errorf("user %q: %w", user.Username, domain.ErrDuplicateKey)
			}
		}
	}

	user.ID = primitive.NewObjectID().Hex()
	cp := *user
	s.users = append(s.users, &cp)
	return nil
}

// Len reports the number of stored users.
func (s *UserStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}

type EmployeeStore struct {
	mu        sync.RWMutex
	employees []*domain.Employee
	opts      options
}

func NewEmployeeStore(opts ...Option) *EmployeeStore {
	s := &EmployeeStore{}
	for _, opt := range opts {
		opt(&s.opts)
	}
	return s
}

func (s *EmployeeStore) ValidID(id string) bool {
	return primitive.IsValidObjectID(id)
}

// FindAll returns employees in insertion order.
func (s *EmployeeStore) FindAll(_ context.Context) ([]*domain.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Employee, 0, len(s.employees))
	for _, e := range s.employees {
		cp := *e
		out = append(out, &cp)
	}
	return out, nil
}

func (s *EmployeeStore) FindByID(_ context.Context, id string) (*domain.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOf(id); i >= 0 {
		cp := *s.employees[i]
		return &cp, nil
	}
	return nil, nil
}

func (s *EmployeeStore) FindByEmail(_ context.Context, email string) (*domain.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, e := range s.employees {
		if e.Email == email {
			cp := *e
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *EmployeeStore) Create(_ context.Context, employee *domain.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.opts.uniqueEmail && s.emailTaken(employee.Email, "") {
		return fmt.Errorf("employee %q: %w", employee.Email, domain.ErrDuplicateKey)
	}

	employee.ID = primitive.NewObjectID().Hex()
	cp := *employee
	s.employees = append(s.employees, &cp)
	return nil
}

func (s *EmployeeStore) Update(_ context.Context, id string, c domain.EmployeeChanges) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return 0, nil
	}
	e := s.employees[i]
	if c.Email != nil && s.opts.uniqueEmail && s.emailTaken(*c.Email, e.ID) {
		return 0, fmt.Errorf("employee %q: %w", *c.Email, domain.ErrDuplicateKey)
	}

	if c.FirstName != nil {
		e.FirstName = *c.FirstName
	}
	if c.LastName != nil {
		e.LastName = *c.LastName
	}
	if c.Email != nil {
		e.Email = *c.Email
	}
	if c.Position != nil {
		e.Position = *c.Position
	}
	if c.Salary != nil {
		e.Salary = *c.Salary
	}
	if c.DateOfJoining != nil {
		e.DateOfJoining = *c.DateOfJoining
	}
	if c.Department != nil {
		e.Department = *c.Department
	}
	e.UpdatedAt = c.UpdatedAt
	return 1, nil
}

func (s *EmployeeStore) Delete(_ context.Context, id string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return 0, nil
	}
	s.employees = append(s.employees[:i], s.employees[i+1:]...)
	return 1, nil
}

// Len reports the number of stored employees.
func (s *EmployeeStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.employees)
}

func (s *EmployeeStore) indexOf(id string) int {
	id = strings.ToLower(id)
	for i, e := range s.employees {
		if e.ID == id {
			return i
		}
	}
	return -1
}

func (s *EmployeeStore) emailTaken(email, exceptID string) bool {
	for _, e := range s.employees {
		if e.Email == email && e.ID != exceptID {
			return true
		}
	}
	return false
}

var (
	_ domain.UserRepository     = (*UserStore)(nil)
	_ domain.EmployeeRepository = (*EmployeeStore)(nil)
)

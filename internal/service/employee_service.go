package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"emphub/internal/domain"
	"emphub/internal/validation"
	"emphub/pkg/logger"
	"emphub/pkg/tracing"
)

type EmployeeService struct {
	repo      domain.EmployeeRepository
	validator *validation.Validator
	logger    logger.Logger
	now       func() time.Time
}

func NewEmployeeService(
	repo domain.EmployeeRepository,
	validator *validation.Validator,
	logger logger.Logger,
) *EmployeeService {
	return &EmployeeService{
		repo:      repo,
		validator: validator,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *EmployeeService) ListEmployees(ctx context.Context) ([]domain.EmployeeView, error) {
	ctx, span := tracing.StartSpan(ctx, "EmployeeService.ListEmployees")
	defer span.End()

	employees, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, report(ctx, s.logger, "list_employees", domain.NewInternalError(err))
	}

	views := make([]domain.EmployeeView, 0, len(employees))
	for _, e := range employees {
		views = append(views, domain.NewEmployeeView(e))
	}
	return views, nil
}

func (s *EmployeeService) CreateEmployee(ctx context.Context, in domain.EmployeeInput) (string, error) {
	ctx, span := tracing.StartSpan(ctx, "EmployeeService.CreateEmployee")
	defer span.End()

	if err := s.validator.Struct(in); err != nil {
		return "", report(ctx, s.logger, "create_employee", err)
	}

	salary, err := parseSalary(in.Salary)
	if err != nil {
		return "", report(ctx, s.logger, "create_employee", domain.NewValidationError(domain.MsgSalaryNotNumber))
	}
	joined, err := domain.ParseDate(in.DateOfJoining)
	if err != nil {
		return "", report(ctx, s.logger, "create_employee", domain.NewValidationError(domain.MsgDateInvalid))
	}

	existing, err := s.repo.FindByEmail(ctx, in.Email)
	if err != nil {
		return "", report(ctx, s.logger, "create_employee", domain.NewInternalError(err))
	}
	if existing != nil {
		return "", report(ctx, s.logger, "create_employee", domain.NewConflictError(domain.MsgEmployeeExists))
	}

	now := s.now().UTC()
	employee := &domain.Employee{
		FirstName:     in.FirstName,
		LastName:      in.LastName,
		Email:         in.Email,
		Position:      in.Position,
		Salary:        salary,
		DateOfJoining: joined,
		Department:    in.Department,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	// find-then-insert is not atomic; the unique index catches the race
	if err := s.repo.Create(ctx, employee); err != nil {
		return "", report(ctx, s.logger, "create_employee", classify(err, domain.MsgEmployeeExists))
	}

	span.SetAttributes(attribute.String("employee.id", employee.ID))
	s.logger.InfoContext(ctx, "Employee created", map[string]interface{}{"employee_id": employee.ID})
	return employee.ID, nil
}

func (s *EmployeeService) GetEmployee(ctx context.Context, id string) (*domain.EmployeeView, error) {
	ctx, span := tracing.StartSpan(ctx, "EmployeeService.GetEmployee")
	defer span.End()

	if !s.repo.ValidID(id) {
		return nil, report(ctx, s.logger, "get_employee", domain.NewValidationError(domain.MsgInvalidEmployeeID))
	}

	employee, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, report(ctx, s.logger, "get_employee", domain.NewInternalError(err))
	}
	if employee == nil {
		return nil, report(ctx, s.logger, "get_employee", domain.NewNotFoundError(domain.MsgEmployeeNotFound))
	}

	view := domain.NewEmployeeView(employee)
	return &view, nil
}

func (s *EmployeeService) UpdateEmployee(ctx context.Context, id string, patch domain.EmployeePatch) error {
	ctx, span := tracing.StartSpan(ctx, "EmployeeService.UpdateEmployee")
	defer span.End()

	if patch.Empty() {
		return report(ctx, s.logger, "update_employee", domain.NewValidationError(domain.MsgNoUpdateData))
	}
	if !s.repo.ValidID(id) {
		return report(ctx, s.logger, "update_employee", domain.NewValidationError(domain.MsgInvalidEmployeeID))
	}
	if err := s.validator.Struct(patch); err != nil {
		return report(ctx, s.logger, "update_employee", err)
	}

	changes, err := s.coerce(patch)
	if err != nil {
		return report(ctx, s.logger, "update_employee", err)
	}

	// email uniqueness is not re-checked here; only a unique index rejects it
	matched, err := s.repo.Update(ctx, id, changes)
	if err != nil {
		return report(ctx, s.logger, "update_employee", classify(err, domain.MsgEmployeeExists))
	}
	if matched == 0 {
		return report(ctx, s.logger, "update_employee", domain.NewNotFoundError(domain.MsgEmployeeNotFound))
	}

	s.logger.InfoContext(ctx, "Employee updated", map[string]interface{}{"employee_id": id})
	return nil
}

func (s *EmployeeService) DeleteEmployee(ctx context.Context, id string) error {
	ctx, span := tracing.StartSpan(ctx, "EmployeeService.DeleteEmployee")
	defer span.End()

	if id == "" {
		return report(ctx, s.logger, "delete_employee", domain.NewValidationError(domain.MsgEmployeeIDRequired))
	}
	if !s.repo.ValidID(id) {
		return report(ctx, s.logger, "delete_employee", domain.NewValidationError(domain.MsgInvalidEmployeeID))
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return report(ctx, s.logger, "delete_employee", domain.NewInternalError(err))
	}
	if deleted == 0 {
		return report(ctx, s.logger, "delete_employee", domain.NewNotFoundError(domain.MsgEmployeeNotFound))
	}

	s.logger.InfoContext(ctx, "Employee deleted", map[string]interface{}{"employee_id": id})
	return nil
}

func (s *EmployeeService) coerce(p domain.EmployeePatch) (domain.EmployeeChanges, error) {
	changes := domain.EmployeeChanges{
		FirstName:  p.FirstName,
		LastName:   p.LastName,
		Email:      p.Email,
		Position:   p.Position,
		Department: p.Department,
		UpdatedAt:  s.now().UTC(),
	}

	if p.Salary != nil {
		salary, err := parseSalary(*p.Salary)
		if err != nil {
			return changes, domain.NewValidationError(domain.MsgSalaryNotNumber)
		}
		changes.Salary = &salary
	}
	if p.DateOfJoining != nil {
		joined, err := domain.ParseDate(*p.DateOfJoining)
		if err != nil {
			return changes, domain.NewValidationError(domain.MsgDateInvalid)
		}
		changes.DateOfJoining = &joined
	}

	return changes, nil
}

func parseSalary(n domain.NumericString) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(string(n)), 64)
	if err != nil {
		return 0, fmt.Errorf("salary %q: %w", n, err)
	}
	return v, nil
}

var _ domain.EmployeeService = (*EmployeeService)(nil)

package domain

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

type Employee struct {
	ID            string
	FirstName     string
	LastName      string
	Email         string
	Position      string
	Salary        float64
	DateOfJoining time.Time
	Department    string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// EmployeeView is the API projection of an Employee. Timestamps are not exposed.
type EmployeeView struct {
	EmployeeID    string    `json:"employee_id"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	Email         string    `json:"email"`
	Position      string    `json:"position"`
	Salary        float64   `json:"salary"`
	DateOfJoining time.Time `json:"date_of_joining"`
	Department    string    `json:"department"`
}

func NewEmployeeView(e *Employee) EmployeeView {
	return EmployeeView{
		EmployeeID:    e.ID,
		FirstName:     e.FirstName,
		LastName:      e.LastName,
		Email:         e.Email,
		Position:      e.Position,
		Salary:        e.Salary,
		DateOfJoining: e.DateOfJoining,
		Department:    e.Department,
	}
}

// NumericString holds a numeric field as received: clients send salary either
// as a JSON number or as a string.
type NumericString string

func (n *NumericString) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		*n = ""
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = NumericString(s)
		return nil
	}
	// JSON numbers are stored in plain decimal form, so exponents pass numeric
	// validation; anything else keeps its literal text and fails it later
	if v, err := strconv.ParseFloat(raw, 64); err == nil {
		*n = NumericString(strconv.FormatFloat(v, 'f', -1, 64))
		return nil
	}
	*n = NumericString(raw)
	return nil
}

// EmployeeInput carries the fields of a create request. Field order is the
// order in which validation failures are reported.
type EmployeeInput struct {
	FirstName     string        `json:"first_name" validate:"required" msg:"First name is required"`
	LastName      string        `json:"last_name" validate:"required" msg:"Last name is required"`
	Email         string        `json:"email" validate:"required,email" msg:"Valid email is required"`
	Position      string        `json:"position" validate:"required" msg:"Position is required"`
	Salary        NumericString `json:"salary" validate:"required,numeric" msg:"Salary must be a number"`
	DateOfJoining string        `json:"date_of_joining" validate:"required,isodate" msg:"Date of joining is required" msg_isodate:"Date of joining must be a valid date"`
	Department    string        `json:"department" validate:"required" msg:"Department is required"`
}

// EmployeePatch is a partial update. Nil fields are left unchanged.
type EmployeePatch struct {
	FirstName     *string        `json:"first_name" validate:"omitnil,min=1" msg:"First name is required"`
	LastName      *string        `json:"last_name" validate:"omitnil,min=1" msg:"Last name is required"`
	Email         *string        `json:"email" validate:"omitnil,email" msg:"Valid email is required"`
	Position      *string        `json:"position" validate:"omitnil,min=1" msg:"Position is required"`
	Salary        *NumericString `json:"salary" validate:"omitnil,numeric" msg:"Salary must be a number"`
	DateOfJoining *string        `json:"date_of_joining" validate:"omitnil,isodate" msg:"Date of joining must be a valid date"`
	Department    *string        `json:"department" validate:"omitnil,min=1" msg:"Department is required"`
}

func (p EmployeePatch) Empty() bool {
	return p.FirstName == nil && p.LastName == nil && p.Email == nil && p.Position == nil &&
		p.Salary == nil && p.DateOfJoining == nil && p.Department == nil
}

// EmployeeChanges is a coerced patch ready for the store. UpdatedAt is always written.
type EmployeeChanges struct {
	FirstName     *string
	LastName      *string
	Email         *string
	Position      *string
	Salary        *float64
	DateOfJoining *time.Time
	Department    *string
	UpdatedAt     time.Time
}

type EmployeeRepository interface {
	FindAll(ctx context.Context) ([]*Employee, error)
	// FindByID and FindByEmail return (nil, nil) when nothing matches.
	FindByID(ctx context.Context, id string) (*Employee, error)
	FindByEmail(ctx context.Context, email string) (*Employee, error)
	Create(ctx context.Context, employee *Employee) error
	Update(ctx context.Context, id string, changes EmployeeChanges) (matched int64, err error)
	Delete(ctx context.Context, id string) (deleted int64, err error)
	// ValidID reports whether id is a well-formed identifier for this store.
	ValidID(id string) bool
}

type EmployeeService interface {
	ListEmployees(ctx context.Context) ([]EmployeeView, error)
	CreateEmployee(ctx context.Context, in EmployeeInput) (employeeID string, err error)
	GetEmployee(ctx context.Context, id string) (*EmployeeView, error)
	UpdateEmployee(ctx context.Context, id string, patch EmployeePatch) error
	DeleteEmployee(ctx context.Context, id string) error
}

var dateLayouts = []string{"2006-01-02", time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02 15:04:05"}

// ParseDate accepts a calendar date or an RFC 3339 timestamp and returns it in UTC.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t.UTC(), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

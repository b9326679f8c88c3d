package repository

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"emphub/internal/domain"
)

const (
	UsersCollection     = "users"
	EmployeesCollection = "employees"
)

type userDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Username  string             `bson:"username"`
	Email     string             `bson:"email"`
	Password  string             `bson:"password"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func (d *userDocument) toDomain() *domain.User {
	return &domain.User{
		ID:           d.ID.Hex(),
		Username:     d.Username,
		Email:        d.Email,
		PasswordHash: d.Password,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

type employeeDocument struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	FirstName     string             `bson:"first_name"`
	LastName      string             `bson:"last_name"`
	Email         string             `bson:"email"`
	Position      string             `bson:"position"`
	Salary        float64            `bson:"salary"`
	DateOfJoining time.Time          `bson:"date_of_joining"`
	Department    string             `bson:"department"`
	CreatedAt     time.Time          `bson:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at"`
}

func newEmployeeDocument(e *domain.Employee) employeeDocument {
	return employeeDocument{
		FirstName:     e.FirstName,
		LastName:      e.LastName,
		Email:         e.Email,
		Position:      e.Position,
		Salary:        e.Salary,
		DateOfJoining: e.DateOfJoining,
		Department:    e.Department,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

func (d *employeeDocument) toDomain() *domain.Employee {
	return &domain.Employee{
		ID:            d.ID.Hex(),
		FirstName:     d.FirstName,
		LastName:      d.LastName,
		Email:         d.Email,
		Position:      d.Position,
		Salary:        d.Salary,
		DateOfJoining: d.DateOfJoining.UTC(),
		Department:    d.Department,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

// changesToSet builds the $set document for a partial update.
func changesToSet(c domain.EmployeeChanges) bson.D {
	set := bson.D{}
	if c.FirstName != nil {
		set = append(set, bson.E{Key: "first_name", Value: *c.FirstName})
	}
	if c.LastName != nil {
		set = append(set, bson.E{Key: "last_name", Value: *c.LastName})
	}
	if c.Email != nil {
		set = append(set, bson.E{Key: "email", Value: *c.Email})
	}
	if c.Position != nil {
		set = append(set, bson.E{Key: "position", Value: *c.Position})
	}
	if c.Salary != nil {
		set = append(set, bson.E{Key: "salary", Value: *c.Salary})
	}
	if c.DateOfJoining != nil {
		set = append(set, bson.E{Key: "date_of_joining", Value: *c.DateOfJoining})
	}
	if c.Department != nil {
		set = append(set, bson.E{Key: "department", Value: *c.Department})
	}
	set = append(set, bson.E{Key: "updated_at", Value: c.UpdatedAt})
	return set
}

// translate maps driver errors onto the sentinels services understand.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if mongo.IsDuplicateKeyError(err) {
		return errors.Join(domain.ErrDuplicateKey, err)
	}
	return err
}

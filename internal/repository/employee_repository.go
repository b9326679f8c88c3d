package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"emphub/internal/domain"
	"emphub/pkg/logger"
	"emphub/pkg/metrics"
)

type EmployeeRepository struct {
	collection *mongo.Collection
	logger     logger.Logger
}

func NewEmployeeRepository(db *mongo.Database, logger logger.Logger) domain.EmployeeRepository {
	return &EmployeeRepository{
		collection: db.Collection(EmployeesCollection),
		logger:     logger,
	}
}

func (r *EmployeeRepository) ValidID(id string) bool {
	return primitive.IsValidObjectID(id)
}

func (r *EmployeeRepository) FindAll(ctx context.Context) ([]*domain.Employee, error) {
	start := time.Now()
	cursor, err := r.collection.Find(ctx, bson.D{})
	if err != nil {
		metrics.RecordStoreOperation("find", EmployeesCollection, err, time.Since(start))
		r.logger.ErrorContext(ctx, "Employee listing failed", map[string]interface{}{"error": err.Error()})
		return nil, fmt.Errorf("listing employees: %w", err)
	}

	var docs []employeeDocument
	err = cursor.All(ctx, &docs)
	metrics.RecordStoreOperation("find", EmployeesCollection, err, time.Since(start))
	if err != nil {
		r.logger.ErrorContext(ctx, "Employee cursor failed", map[string]interface{}{"error": err.Error()})
		return nil, fmt.Errorf("reading employees: %w", err)
	}

	employees := make([]*domain.Employee, 0, len(docs))
	for i := range docs {
		employees = append(employees, docs[i].toDomain())
	}
	return employees, nil
}

func (r *EmployeeRepository) FindByID(ctx context.Context, id string) (*domain.Employee, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	return r.findOne(ctx, "find_by_id", bson.D{{Key: "_id", Value: oid}})
}

func (r *EmployeeRepository) FindByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	return r.findOne(ctx, "find_by_email", bson.D{{Key: "email", Value: email}})
}

func (r *EmployeeRepository) findOne(ctx context.Context, op string, filter bson.D) (*domain.Employee, error) {
	start := time.Now()
	var doc employeeDocument
	err := r.collection.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		metrics.RecordStoreOperation(op, EmployeesCollection, nil, time.Since(start))
		return nil, nil
	}
	metrics.RecordStoreOperation(op, EmployeesCollection, err, time.Since(start))
	if err != nil {
		r.logger.ErrorContext(ctx, "Employee lookup failed", map[string]interface{}{"operation": op, "error": err.Error()})
		return nil, fmt.Errorf("finding employee: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *EmployeeRepository) Create(ctx context.Context, employee *domain.Employee) error {
	start := time.Now()
	res, err := r.collection.InsertOne(ctx, newEmployeeDocument(employee))
	err = translate(err)
	metrics.RecordStoreOperation("insert_one", EmployeesCollection, err, time.Since(start))
	if err != nil {
		if !errors.Is(err, domain.ErrDuplicateKey) {
			r.logger.ErrorContext(ctx, "Employee insert failed", map[string]interface{}{"email": employee.Email, "error": err.Error()})
		}
		return fmt.Errorf("inserting employee: %w", err)
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		employee.ID = oid.Hex()
	}
	return nil
}

func (r *EmployeeRepository) Update(ctx context.Context, id string, changes domain.EmployeeChanges) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, nil
	}

	start := time.Now()
	res, err := r.collection.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: oid}},
		bson.D{{Key: "$set", Value: changesToSet(changes)}},
	)
	err = translate(err)
	metrics.RecordStoreOperation("update_one", EmployeesCollection, err, time.Since(start))
	if err != nil {
		if !errors.Is(err, domain.ErrDuplicateKey) {
			r.logger.ErrorContext(ctx, "Employee update failed", map[string]interface{}{"id": id, "error": err.Error()})
		}
		return 0, fmt.Errorf("updating employee: %w", err)
	}

	return res.MatchedCount, nil
}

func (r *EmployeeRepository) Delete(ctx context.Context, id string) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, nil
	}

	start := time.Now()
	res, err := r.collection.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	metrics.RecordStoreOperation("delete_one", EmployeesCollection, err, time.Since(start))
	if err != nil {
		r.logger.ErrorContext(ctx, "Employee delete failed", map[string]interface{}{"id": id, "error": err.Error()})
		return 0, fmt.Errorf("deleting employee: %w", err)
	}

	return res.DeletedCount, nil
}

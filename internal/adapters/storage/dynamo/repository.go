package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"

	"github.com/jsamuelsen/ritual-service/internal/domain"
)

// OrderRepository implements ports.OrderRepository.
type OrderRepository struct {
	table table
}

// NewOrderRepository stores orders in tableName.
func NewOrderRepository(api API, tableName string) *OrderRepository {
	return &OrderRepository{table: table{api: api, name: tableName}}
}

// Get returns domain.ErrNotFound if the order does not exist.
func (r *OrderRepository) Get(ctx context.Context, id string) (*domain.Order, error) {
	var it orderItem

	found, err := r.table.get(ctx, id, &it)
	if err != nil {
		return nil, err
	}

	if !found {
		return nil, domain.NewNotFoundError("order", id)
	}

	return it.toDomain()
}

// Save creates or replaces the order.
func (r *OrderRepository) Save(ctx context.Context, order *domain.Order) error {
	if order.ID == "" {
		return domain.NewValidationError("id", "cannot be empty")
	}

	it, err := toOrderItem(order)
	if err != nil {
		return err
	}

	if err := r.table.put(ctx, it); err != nil {
		return fmt.Errorf("saving order %s: %w", order.ID, err)
	}

	return nil
}

// ResultRepository implements ports.ResultRepository.
type ResultRepository struct {
	table table
	newID func() string
}

// NewResultRepository stores results in tableName.
func NewResultRepository(api API, tableName string) *ResultRepository {
	return &ResultRepository{
		table: table{api: api, name: tableName},
		newID: uuid.NewString,
	}
}

// Save assigns an ID when the result has none and returns it.
func (r *ResultRepository) Save(ctx context.Context, result *domain.Result) (string, error) {
	if result.ID == "" {
		result.ID = r.newID()
	}

	it, err := toResultItem(result)
	if err != nil {
		return "", err
	}

	if err := r.table.put(ctx, it); err != nil {
		return "", fmt.Errorf("saving result %s: %w", result.ID, err)
	}

	return result.ID, nil
}

// Get returns domain.ErrNotFound if the result does not exist.
func (r *ResultRepository) Get(ctx context.Context, id string) (*domain.Result, error) {
	var it resultItem

	found, err := r.table.get(ctx, id, &it)
	if err != nil {
		return nil, err
	}

	if !found {
		return nil, domain.NewNotFoundError("result", id)
	}

	return it.toDomain()
}

// Delete is idempotent.
func (r *ResultRepository) Delete(ctx context.Context, id string) error {
	return r.table.delete(ctx, id)
}

// HealthCheck reports whether the configured tables are reachable.
type HealthCheck struct {
	api    API
	tables []string
}

// NewHealthCheck checks every named table.
func NewHealthCheck(api API, tables ...string) *HealthCheck {
	return &HealthCheck{api: api, tables: tables}
}

// Name implements ports.HealthChecker.
func (h *HealthCheck) Name() string { return serviceName }

// Check fails unless every table exists and is active.
func (h *HealthCheck) Check(ctx context.Context) error {
	for _, name := range h.tables {
		out, err := h.api.DescribeTable(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(name)})
		if err != nil {
			return translateError(err, "describe "+name)
		}

		if out.Table != nil && out.Table.TableStatus != types.TableStatusActive {
			return fmt.Errorf("table %s is %s", name, out.Table.TableStatus)
		}
	}

	return nil
}

// Package dynamo stores orders and results in DynamoDB.
// Each table is keyed by a string partition key "id". Submissions and ritual
// content are kept as JSON strings so the domain types need no DynamoDB tags.
package dynamo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/jsamuelsen/ritual-service/internal/domain"
)

const serviceName = "dynamodb"

// API is the subset of *dynamodb.Client the repositories use.
type API interface {
	GetItem(ctx context.Context, in *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DeleteItem(ctx context.Context, in *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	DescribeTable(ctx context.Context, in *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
}

// NewClient builds a DynamoDB client, honouring an endpoint override.
func NewClient(cfg aws.Config, endpoint *string) *dynamodb.Client {
	return dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
		if endpoint != nil {
			o.BaseEndpoint = endpoint
		}
	})
}

type orderItem struct {
	ID            string            `dynamodbav:"id"`
	SessionID     string            `dynamodbav:"session_id,omitempty"`
	Email         string            `dynamodbav:"email,omitempty"`
	Submission    string            `dynamodbav:"submission,omitempty"`
	Status        string            `dynamodbav:"status"`
	PaymentStatus string            `dynamodbav:"payment_status,omitempty"`
	AmountTotal   int64             `dynamodbav:"amount_total"`
	Currency      string            `dynamodbav:"currency,omitempty"`
	Metadata      map[string]string `dynamodbav:"metadata,omitempty"`
	ResultID      string            `dynamodbav:"result_id,omitempty"`
	PDFURL        string            `dynamodbav:"pdf_url,omitempty"`
	FailureReason string            `dynamodbav:"failure_reason,omitempty"`
	CreatedAt     time.Time         `dynamodbav:"created_at"`
	UpdatedAt     time.Time         `dynamodbav:"updated_at"`
}

func toOrderItem(o *domain.Order) (*orderItem, error) {
	sub, err := encodeJSON(o.Submission)
	if err != nil {
		return nil, fmt.Errorf("encoding submission: %w", err)
	}

	return &orderItem{
		ID:            o.ID,
		SessionID:     o.SessionID,
		Email:         o.Email,
		Submission:    sub,
		Status:        string(o.Status),
		PaymentStatus: o.PaymentStatus,
		AmountTotal:   o.AmountTotal,
		Currency:      o.Currency,
		Metadata:      o.Metadata,
		ResultID:      o.ResultID,
		PDFURL:        o.PDFURL,
		FailureReason: o.FailureReason,
		CreatedAt:     o.CreatedAt.UTC(),
		UpdatedAt:     o.UpdatedAt.UTC(),
	}, nil
}

func (it *orderItem) toDomain() (*domain.Order, error) {
	o := &domain.Order{
		ID:            it.ID,
		SessionID:     it.SessionID,
		Email:         it.Email,
		Status:        domain.OrderStatus(it.Status),
		PaymentStatus: it.PaymentStatus,
		AmountTotal:   it.AmountTotal,
		Currency:      it.Currency,
		Metadata:      it.Metadata,
		ResultID:      it.ResultID,
		PDFURL:        it.PDFURL,
		FailureReason: it.FailureReason,
		CreatedAt:     it.CreatedAt,
		UpdatedAt:     it.UpdatedAt,
	}

	if it.Submission != "" {
		o.Submission = &domain.Submission{}
		if err := json.Unmarshal([]byte(it.Submission), o.Submission); err != nil {
			return nil, fmt.Errorf("decoding submission of order %s: %w", it.ID, err)
		}
	}

	return o, nil
}

type resultItem struct {
	ID        string    `dynamodbav:"id"`
	OrderID   string    `dynamodbav:"order_id,omitempty"`
	Email     string    `dynamodbav:"email,omitempty"`
	Name      string    `dynamodbav:"name,omitempty"`
	UserData  string    `dynamodbav:"user_data,omitempty"`
	Content   string    `dynamodbav:"content"`
	PDFURL    string    `dynamodbav:"pdf_url,omitempty"`
	CreatedAt time.Time `dynamodbav:"created_at"`
}

func toResultItem(r *domain.Result) (*resultItem, error) {
	userData, err := encodeJSON(r.UserData)
	if err != nil {
		return nil, fmt.Errorf("encoding user data: %w", err)
	}

	content, err := encodeJSON(r.Ritual)
	if err != nil {
		return nil, fmt.Errorf("encoding ritual: %w", err)
	}

	return &resultItem{
		ID:        r.ID,
		OrderID:   r.OrderID,
		Email:     r.Email,
		Name:      r.Name,
		UserData:  userData,
		Content:   content,
		PDFURL:    r.PDFURL,
		CreatedAt: r.CreatedAt.UTC(),
	}, nil
}

func (it *resultItem) toDomain() (*domain.Result, error) {
	r := &domain.Result{
		ID:        it.ID,
		OrderID:   it.OrderID,
		Email:     it.Email,
		Name:      it.Name,
		PDFURL:    it.PDFURL,
		CreatedAt: it.CreatedAt,
	}

	if it.UserData != "" {
		r.UserData = &domain.Submission{}
		if err := json.Unmarshal([]byte(it.UserData), r.UserData); err != nil {
			return nil, fmt.Errorf("decoding user data of result %s: %w", it.ID, err)
		}
	}

	if it.Content != "" {
		r.Ritual = &domain.Ritual{}
		if err := json.Unmarshal([]byte(it.Content), r.Ritual); err != nil {
			return nil, fmt.Errorf("decoding ritual of result %s: %w", it.ID, err)
		}
	}

	return r, nil
}

// encodeJSON returns "" for nil pointers.
func encodeJSON[T any](v *T) (string, error) {
	if v == nil {
		return "", nil
	}

	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}

	return string(b), nil
}

func key(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberS{Value: id},
	}
}

// table wraps the item operations shared by both repositories.
type table struct {
	api  API
	name string
}

// get unmarshals the item into out. found is false when the key is absent.
func (t *table) get(ctx context.Context, id string, out any) (bool, error) {
	resp, err := t.api.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(t.name),
		Key:            key(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return false, translateError(err, "get item")
	}

	if len(resp.Item) == 0 {
		return false, nil
	}

	if err := attributevalue.UnmarshalMap(resp.Item, out); err != nil {
		return false, fmt.Errorf("unmarshaling item %s: %w", id, err)
	}

	return true, nil
}

func (t *table) put(ctx context.Context, item any) error {
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("marshaling item: %w", err)
	}

	if _, err := t.api.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(t.name),
		Item:      av,
	}); err != nil {
		return translateError(err, "put item")
	}

	return nil
}

func (t *table) delete(ctx context.Context, id string) error {
	if _, err := t.api.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(t.name),
		Key:       key(id),
	}); err != nil {
		return translateError(err, "delete item")
	}

	return nil
}

// translateError marks throttling and missing tables as unavailability.
// Anything else is returned wrapped so callers see the SDK cause.
func translateError(err error, operation string) error {
	var (
		throughput *types.ProvisionedThroughputExceededException
		limit      *types.RequestLimitExceeded
		missing    *types.ResourceNotFoundException
	)

	switch {
	case errors.As(err, &throughput), errors.As(err, &limit):
		return domain.NewUnavailableError(serviceName, operation+": throughput exceeded")
	case errors.As(err, &missing):
		return domain.NewUnavailableError(serviceName, operation+": table not found")
	default:
		return fmt.Errorf("dynamodb %s: %w", operation, err)
	}
}

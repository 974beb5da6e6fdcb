package storage

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/alex-pricope/event-judging-system/logging"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type AdminStorage interface {
	Get(ctx context.Context, id string) (*Admin, error)
	GetByEmail(ctx context.Context, email string) (*Admin, error)
	Exists(ctx context.Context) (bool, error)
	Create(ctx context.Context, admin *Admin) error
}

type DynamoAdminStorage struct {
	Client    *dynamodb.Client
	TableName string
}

func (s *DynamoAdminStorage) Get(ctx context.Context, id string) (*Admin, error) {
	out, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &s.TableName,
		Key:       stringKey(id),
	})
	if err != nil {
		logging.Log.Errorf("ADMIN: GetItem for ID %s failed: %v", id, err)
		return nil, err
	}
	if out.Item == nil {
		return nil, nil
	}

	var admin Admin
	if err := attributevalue.UnmarshalMap(out.Item, &admin); err != nil {
		logging.Log.Errorf("ADMIN: failed to unmarshal admin: %v", err)
		return nil, err
	}
	return &admin, nil
}

func (s *DynamoAdminStorage) GetByEmail(ctx context.Context, email string) (*Admin, error) {
	input := equalsFilter("Email", strings.ToLower(email))
	input.TableName = &s.TableName

	items, err := scanAll(ctx, s.Client, input)
	if err != nil {
		logging.Log.Errorf("ADMIN: scan for email failed: %v", err)
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}

	var admin Admin
	if err := attributevalue.UnmarshalMap(items[0], &admin); err != nil {
		logging.Log.Errorf("ADMIN: failed to unmarshal admin: %v", err)
		return nil, err
	}
	return &admin, nil
}

func (s *DynamoAdminStorage) Exists(ctx context.Context) (bool, error) {
	out, err := s.Client.Scan(ctx, &dynamodb.ScanInput{
		TableName: &s.TableName,
		Select:    types.SelectCount,
		Limit:     aws.Int32(1),
	})
	if err != nil {
		logging.Log.Errorf("ADMIN: count scan failed: %v", err)
		return false, err
	}
	return out.Count > 0 || out.LastEvaluatedKey != nil, nil
}

func (s *DynamoAdminStorage) Create(ctx context.Context, admin *Admin) error {
	admin.Email = strings.ToLower(admin.Email)
	existing, err := s.GetByEmail(ctx, admin.Email)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrDuplicateEmail
	}
	if admin.CreatedAt.IsZero() {
		admin.CreatedAt = time.Now().UTC()
	}

	item, err := attributevalue.MarshalMap(admin)
	if err != nil {
		logging.Log.Errorf("ADMIN: failed to marshal admin: %v", err)
		return err
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           &s.TableName,
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(PK)"),
	})
	if err != nil {
		var cce *types.ConditionalCheckFailedException
		if errors.As(err, &cce) {
			return ErrItemWithIDAlreadyExists
		}
		logging.Log.Errorf("ADMIN: failed to create admin: %v", err)
		return err
	}
	return nil
}

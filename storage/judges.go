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

// JudgeStorage persists judges. Emails are stored lower-cased.
type JudgeStorage interface {
	Get(ctx context.Context, id string) (*Judge, error)
	GetByEmail(ctx context.Context, email string) (*Judge, error)
	GetAll(ctx context.Context) ([]*Judge, error)
	Create(ctx context.Context, judge *Judge) error
	Update(ctx context.Context, judge *Judge) error
	Delete(ctx context.Context, id string) error
}

type DynamoJudgeStorage struct {
	Client    *dynamodb.Client
	TableName string
}

func (s *DynamoJudgeStorage) Get(ctx context.Context, id string) (*Judge, error) {
	out, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &s.TableName,
		Key:       stringKey(id),
	})
	if err != nil {
		logging.Log.Errorf("JUDGE: GetItem for ID %s failed: %v", id, err)
		return nil, err
	}
	if out.Item == nil {
		return nil, nil
	}

	var judge Judge
	if err := attributevalue.UnmarshalMap(out.Item, &judge); err != nil {
		logging.Log.Errorf("JUDGE: failed to unmarshal judge: %v", err)
		return nil, err
	}
	return &judge, nil
}

func (s *DynamoJudgeStorage) GetByEmail(ctx context.Context, email string) (*Judge, error) {
	input := equalsFilter("Email", strings.ToLower(email))
	input.TableName = &s.TableName

	items, err := scanAll(ctx, s.Client, input)
	if err != nil {
		logging.Log.Errorf("JUDGE: scan for email failed: %v", err)
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}

	var judge Judge
	if err := attributevalue.UnmarshalMap(items[0], &judge); err != nil {
		logging.Log.Errorf("JUDGE: failed to unmarshal judge: %v", err)
		return nil, err
	}
	return &judge, nil
}

func (s *DynamoJudgeStorage) GetAll(ctx context.Context) ([]*Judge, error) {
	items, err := scanAll(ctx, s.Client, &dynamodb.ScanInput{
		TableName: &s.TableName,
	})
	if err != nil {
		logging.Log.Errorf("JUDGE: scan failed: %v", err)
		return nil, err
	}

	var judges []*Judge
	if err := attributevalue.UnmarshalListOfMaps(items, &judges); err != nil {
		logging.Log.Errorf("JUDGE: failed to unmarshal judge list: %v", err)
		return nil, err
	}
	return judges, nil
}

func (s *DynamoJudgeStorage) Create(ctx context.Context, judge *Judge) error {
	judge.Email = strings.ToLower(judge.Email)
	existing, err := s.GetByEmail(ctx, judge.Email)
	if err != nil {
		return err
	}
	if existing != nil {
		logging.Log.Warnf("JUDGE: email %s already registered", judge.Email)
		return ErrDuplicateEmail
	}

	now := time.Now().UTC()
	if judge.CreatedAt.IsZero() {
		judge.CreatedAt = now
	}
	judge.UpdatedAt = now

	item, err := attributevalue.MarshalMap(judge)
	if err != nil {
		logging.Log.Errorf("JUDGE: failed to marshal judge: %v", err)
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
		logging.Log.Errorf("JUDGE: failed to create judge: %v", err)
		return err
	}
	return nil
}

func (s *DynamoJudgeStorage) Update(ctx context.Context, judge *Judge) error {
	judge.Email = strings.ToLower(judge.Email)
	existing, err := s.GetByEmail(ctx, judge.Email)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != judge.ID {
		return ErrDuplicateEmail
	}
	judge.UpdatedAt = time.Now().UTC()

	item, err := attributevalue.MarshalMap(judge)
	if err != nil {
		logging.Log.Errorf("JUDGE: failed to marshal updated judge: %v", err)
		return err
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           &s.TableName,
		Item:                item,
		ConditionExpression: aws.String("attribute_exists(PK)"),
	})
	if err != nil {
		var cce *types.ConditionalCheckFailedException
		if errors.As(err, &cce) {
			return ErrItemNotFound
		}
		logging.Log.Errorf("JUDGE: failed to update judge: %v", err)
		return err
	}
	return nil
}

func (s *DynamoJudgeStorage) Delete(ctx context.Context, id string) error {
	_, err := s.Client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: &s.TableName,
		Key:       stringKey(id),
	})
	if err != nil {
		logging.Log.Errorf("JUDGE: failed to delete judge with ID %s: %v", id, err)
		return err
	}
	logging.Log.Infof("JUDGE: deleted judge with ID %s", id)
	return nil
}

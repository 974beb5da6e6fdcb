package storage

import (
	"context"

	"github.com/alex-pricope/event-judging-system/logging"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// EvaluationStorage persists evaluations keyed by (team, judge).
// Put is an upsert on that pair; the caller owns totals and timestamps.
type EvaluationStorage interface {
	Get(ctx context.Context, teamID, judgeID string) (*Evaluation, error)
	GetByTeam(ctx context.Context, teamID string) ([]*Evaluation, error)
	Put(ctx context.Context, evaluation *Evaluation) error
	DeleteByTeam(ctx context.Context, teamID string) (int, error)
}

type DynamoEvaluationStorage struct {
	Client    *dynamodb.Client
	TableName string
}

func evaluationKey(teamID, judgeID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: teamID},
		"SK": &types.AttributeValueMemberS{Value: judgeID},
	}
}

func (s *DynamoEvaluationStorage) Get(ctx context.Context, teamID, judgeID string) (*Evaluation, error) {
	out, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &s.TableName,
		Key:       evaluationKey(teamID, judgeID),
	})
	if err != nil {
		logging.Log.Errorf("EVAL: GetItem for team %s judge %s failed: %v", teamID, judgeID, err)
		return nil, err
	}
	if out.Item == nil {
		return nil, nil
	}

	var evaluation Evaluation
	if err := attributevalue.UnmarshalMap(out.Item, &evaluation); err != nil {
		logging.Log.Errorf("EVAL: failed to unmarshal evaluation: %v", err)
		return nil, err
	}
	return &evaluation, nil
}

func (s *DynamoEvaluationStorage) GetByTeam(ctx context.Context, teamID string) ([]*Evaluation, error) {
	items, err := queryAll(ctx, s.Client, &dynamodb.QueryInput{
		TableName:              &s.TableName,
		KeyConditionExpression: aws.String("PK = :team"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":team": &types.AttributeValueMemberS{Value: teamID},
		},
	})
	if err != nil {
		logging.Log.Errorf("EVAL: failed to query evaluations for team %s: %v", teamID, err)
		return nil, err
	}

	var evaluations []*Evaluation
	if err := attributevalue.UnmarshalListOfMaps(items, &evaluations); err != nil {
		logging.Log.Errorf("EVAL: failed to unmarshal evaluations for team %s: %v", teamID, err)
		return nil, err
	}
	return evaluations, nil
}

func (s *DynamoEvaluationStorage) Put(ctx context.Context, evaluation *Evaluation) error {
	item, err := attributevalue.MarshalMap(evaluation)
	if err != nil {
		logging.Log.Errorf("EVAL: failed to marshal evaluation: %v", err)
		return err
	}
	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: &s.TableName,
		Item:      item,
	})
	if err != nil {
		logging.Log.Errorf("EVAL: failed to put evaluation: %v", err)
		return err
	}
	return nil
}

func (s *DynamoEvaluationStorage) DeleteByTeam(ctx context.Context, teamID string) (int, error) {
	items, err := queryAll(ctx, s.Client, &dynamodb.QueryInput{
		TableName:              &s.TableName,
		KeyConditionExpression: aws.String("PK = :team"),
		ProjectionExpression:   aws.String("PK, SK"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":team": &types.AttributeValueMemberS{Value: teamID},
		},
	})
	if err != nil {
		logging.Log.Errorf("EVAL: query for delete failed: %v", err)
		return 0, err
	}

	writeRequests := make([]types.WriteRequest, 0, len(items))
	for _, item := range items {
		writeRequests = append(writeRequests, types.WriteRequest{
			DeleteRequest: &types.DeleteRequest{
				Key: map[string]types.AttributeValue{
					"PK": item["PK"],
					"SK": item["SK"],
				},
			},
		})
	}

	deleted, err := batchWrite(ctx, s.Client, s.TableName, writeRequests)
	if err != nil {
		logging.Log.Errorf("EVAL: batch delete for team %s stopped after %d of %d: %v", teamID, deleted, len(writeRequests), err)
		return deleted, err
	}
	logging.Log.Infof("EVAL: deleted %d evaluations for team %s", deleted, teamID)
	return deleted, nil
}

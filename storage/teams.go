package storage

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/alex-pricope/event-judging-system/logging"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// TeamStorage persists teams. Get and GetByName return nil, nil when nothing matches.
type TeamStorage interface {
	Get(ctx context.Context, id string) (*Team, error)
	GetByName(ctx context.Context, name string) (*Team, error)
	GetAll(ctx context.Context) ([]*Team, error)
	GetByEvent(ctx context.Context, event EventType) ([]*Team, error)
	Create(ctx context.Context, team *Team) error
	Update(ctx context.Context, team *Team) error
	SetSelectedForRound2(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type DynamoTeamStorage struct {
	Client    *dynamodb.Client
	TableName string
}

func (s *DynamoTeamStorage) GetAll(ctx context.Context) ([]*Team, error) {
	items, err := scanAll(ctx, s.Client, &dynamodb.ScanInput{
		TableName: &s.TableName,
	})
	if err != nil {
		logging.Log.Errorf("TEAM: scan failed: %v", err)
		return nil, err
	}

	var teams []*Team
	if err := attributevalue.UnmarshalListOfMaps(items, &teams); err != nil {
		logging.Log.Errorf("TEAM: failed to unmarshal team list: %v", err)
		return nil, err
	}
	return teams, nil
}

func (s *DynamoTeamStorage) GetByEvent(ctx context.Context, event EventType) ([]*Team, error) {
	input := equalsFilter("EventType", string(event))
	input.TableName = &s.TableName

	items, err := scanAll(ctx, s.Client, input)
	if err != nil {
		logging.Log.Errorf("TEAM: scan for event %s failed: %v", event, err)
		return nil, err
	}

	var teams []*Team
	if err := attributevalue.UnmarshalListOfMaps(items, &teams); err != nil {
		logging.Log.Errorf("TEAM: failed to unmarshal teams for event %s: %v", event, err)
		return nil, err
	}
	return teams, nil
}

func (s *DynamoTeamStorage) Get(ctx context.Context, id string) (*Team, error) {
	out, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &s.TableName,
		Key:       stringKey(id),
	})
	if err != nil {
		logging.Log.Errorf("TEAM: GetItem for ID %s failed: %v", id, err)
		return nil, err
	}
	if out.Item == nil {
		logging.Log.Warnf("TEAM: no team found with ID %s", id)
		return nil, nil
	}

	var team Team
	if err := attributevalue.UnmarshalMap(out.Item, &team); err != nil {
		logging.Log.Errorf("TEAM: failed to unmarshal team: %v", err)
		return nil, err
	}
	return &team, nil
}

func (s *DynamoTeamStorage) GetByName(ctx context.Context, name string) (*Team, error) {
	input := equalsFilter("Name", name)
	input.TableName = &s.TableName

	items, err := scanAll(ctx, s.Client, input)
	if err != nil {
		logging.Log.Errorf("TEAM: scan for name %q failed: %v", name, err)
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}

	var team Team
	if err := attributevalue.UnmarshalMap(items[0], &team); err != nil {
		logging.Log.Errorf("TEAM: failed to unmarshal team: %v", err)
		return nil, err
	}
	return &team, nil
}

func (s *DynamoTeamStorage) Create(ctx context.Context, team *Team) error {
	existing, err := s.GetByName(ctx, team.Name)
	if err != nil {
		return err
	}
	if existing != nil {
		logging.Log.Warnf("TEAM: name %q already taken by %s", team.Name, existing.ID)
		return ErrDuplicateName
	}

	team.Normalize()
	now := time.Now().UTC()
	if team.CreatedAt.IsZero() {
		team.CreatedAt = now
	}
	team.UpdatedAt = now

	item, err := attributevalue.MarshalMap(team)
	if err != nil {
		logging.Log.Errorf("TEAM: failed to marshal team: %v", err)
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
			logging.Log.Warnf("TEAM: item with ID %s already exists", team.ID)
			return ErrItemWithIDAlreadyExists
		}
		logging.Log.Errorf("TEAM: failed to create team: %v", err)
		return err
	}
	return nil
}

func (s *DynamoTeamStorage) Update(ctx context.Context, team *Team) error {
	existing, err := s.GetByName(ctx, team.Name)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != team.ID {
		logging.Log.Warnf("TEAM: name %q already taken by %s", team.Name, existing.ID)
		return ErrDuplicateName
	}

	team.Normalize()
	team.UpdatedAt = time.Now().UTC()

	members, err := attributevalue.Marshal(team.Members)
	if err != nil {
		logging.Log.Errorf("TEAM: failed to marshal members: %v", err)
		return err
	}

	// SelectedForRound2 is left out so an edit never clears a judge's selection
	_, err = s.Client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           &s.TableName,
		Key:                 stringKey(team.ID),
		UpdateExpression:    aws.String("SET #name = :name, EventType = :event, Members = :members, TotalMembers = :total, Description = :description, UpdatedAt = :now"),
		ConditionExpression: aws.String("attribute_exists(PK)"),
		ExpressionAttributeNames: map[string]string{
			"#name": "Name",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":name":        &types.AttributeValueMemberS{Value: team.Name},
			":event":       &types.AttributeValueMemberS{Value: string(team.EventType)},
			":members":     members,
			":total":       &types.AttributeValueMemberN{Value: strconv.Itoa(team.TotalMembers)},
			":description": &types.AttributeValueMemberS{Value: team.Description},
			":now":         &types.AttributeValueMemberS{Value: team.UpdatedAt.Format(time.RFC3339Nano)},
		},
	})
	if err != nil {
		var cce *types.ConditionalCheckFailedException
		if errors.As(err, &cce) {
			return ErrItemNotFound
		}
		logging.Log.Errorf("TEAM: failed to update team: %v", err)
		return err
	}
	return nil
}

func (s *DynamoTeamStorage) SetSelectedForRound2(ctx context.Context, id string) error {
	_, err := s.Client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(s.TableName),
		Key:                 stringKey(id),
		UpdateExpression:    aws.String("SET SelectedForRound2 = :val, UpdatedAt = :now"),
		ConditionExpression: aws.String("attribute_exists(PK)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":val": &types.AttributeValueMemberBOOL{Value: true},
			":now": &types.AttributeValueMemberS{Value: time.Now().UTC().Format(time.RFC3339Nano)},
		},
	})
	if err != nil {
		var cce *types.ConditionalCheckFailedException
		if errors.As(err, &cce) {
			return ErrItemNotFound
		}
		logging.Log.Errorf("TEAM: failed to select team %s for round 2: %v", id, err)
		return err
	}
	return nil
}

func (s *DynamoTeamStorage) Delete(ctx context.Context, id string) error {
	_, err := s.Client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: &s.TableName,
		Key:       stringKey(id),
	})
	if err != nil {
		logging.Log.Errorf("TEAM: failed to delete team with ID %s: %v", id, err)
		return err
	}
	logging.Log.Infof("TEAM: deleted team with ID %s", id)
	return nil
}

package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/alex-pricope/event-judging-system/logging"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// dynamoBatchSize is the BatchWriteItem request limit.
const dynamoBatchSize = 25

// Unprocessed batch items are resent up to batchMaxRetries times, doubling the wait each time.
var (
	batchMaxRetries   = 5
	batchRetryBackoff = 100 * time.Millisecond
)

func scanAll(ctx context.Context, client *dynamodb.Client, input *dynamodb.ScanInput) ([]map[string]types.AttributeValue, error) {
	var items []map[string]types.AttributeValue
	paginator := dynamodb.NewScanPaginator(client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		items = append(items, page.Items...)
	}
	return items, nil
}

func queryAll(ctx context.Context, client *dynamodb.Client, input *dynamodb.QueryInput) ([]map[string]types.AttributeValue, error) {
	var items []map[string]types.AttributeValue
	paginator := dynamodb.NewQueryPaginator(client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		items = append(items, page.Items...)
	}
	return items, nil
}

func stringKey(pk string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: pk},
	}
}

func equalsFilter(attribute, value string) *dynamodb.ScanInput {
	return &dynamodb.ScanInput{
		FilterExpression:         aws.String("#attr = :val"),
		ExpressionAttributeNames: map[string]string{"#attr": attribute},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":val": &types.AttributeValueMemberS{Value: value},
		},
	}
}

// batchWrite sends requests in chunks of dynamoBatchSize and resends whatever DynamoDB
// hands back as unprocessed. It returns how many requests were applied; an error means
// some were not.
func batchWrite(ctx context.Context, client *dynamodb.Client, table string, requests []types.WriteRequest) (int, error) {
	processed := 0
	for i := 0; i < len(requests); i += dynamoBatchSize {
		end := i + dynamoBatchSize
		if end > len(requests) {
			end = len(requests)
		}

		pending := requests[i:end]
		for attempt := 0; len(pending) > 0; attempt++ {
			if attempt > 0 {
				if attempt > batchMaxRetries {
					return processed, fmt.Errorf("batch write to %s left %d items unprocessed after %d retries", table, len(pending), batchMaxRetries)
				}
				wait := batchRetryBackoff << (attempt - 1)
				logging.Log.Warnf("STORAGE: %d items unprocessed on %s, retrying in %s", len(pending), table, wait)
				select {
				case <-ctx.Done():
					return processed, ctx.Err()
				case <-time.After(wait):
				}
			}

			out, err := client.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
				RequestItems: map[string][]types.WriteRequest{table: pending},
			})
			if err != nil {
				return processed, err
			}
			unprocessed := out.UnprocessedItems[table]
			processed += len(pending) - len(unprocessed)
			pending = unprocessed
		}
	}
	return processed, nil
}

package storage

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/alex-pricope/event-judging-system/logging"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/sirupsen/logrus"
)

type attributes = map[string]interface{}

// fakeDynamo serves the subset of the DynamoDB JSON API the stores use. Items are kept
// in their wire form and keyed by PK and SK.
type fakeDynamo struct {
	t      *testing.T
	mu     sync.Mutex
	tables map[string]map[string]attributes

	batchCalls int
	// throttle is how many BatchWriteItem calls hand every request back unprocessed.
	throttle int
	// maxPerBatch caps the requests applied per BatchWriteItem call when set.
	maxPerBatch int
}

func newFakeDynamo(t *testing.T) (*fakeDynamo, *dynamodb.Client) {
	t.Helper()
	if logging.Log == nil {
		logging.Log = logrus.New()
	}

	fake := &fakeDynamo{t: t, tables: map[string]map[string]attributes{}}
	server := httptest.NewServer(fake)
	t.Cleanup(server.Close)

	client := dynamodb.New(dynamodb.Options{
		BaseEndpoint:     aws.String(server.URL),
		Region:           "us-east-1",
		Credentials:      aws.AnonymousCredentials{},
		RetryMaxAttempts: 1,
	})
	return fake, client
}

func (f *fakeDynamo) count(table string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.tables[table])
}

func (f *fakeDynamo) batches() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.batchCalls
}

func (f *fakeDynamo) limitBatches(throttle, maxPerBatch int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.throttle = throttle
	f.maxPerBatch = maxPerBatch
}

func (f *fakeDynamo) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var in attributes
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		f.t.Errorf("fake dynamo: bad request body: %v", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	op := strings.TrimPrefix(r.Header.Get("X-Amz-Target"), "DynamoDB_20120810.")
	var out attributes
	ok := true
	switch op {
	case "GetItem":
		out = f.getItem(in)
	case "PutItem":
		out, ok = f.putItem(in)
	case "UpdateItem":
		out, ok = f.updateItem(in)
	case "DeleteItem":
		delete(f.table(in), itemKey(in["Key"].(attributes)))
		out = attributes{}
	case "Query":
		out = f.query(in)
	case "Scan":
		out = f.scan(in)
	case "BatchWriteItem":
		out = f.batchWrite(in)
	default:
		f.t.Errorf("fake dynamo: unsupported operation %q", op)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/x-amz-json-1.0")
	if !ok {
		w.Header().Set("X-Amzn-ErrorType", "ConditionalCheckFailedException")
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(attributes{
			"__type":  "com.amazonaws.dynamodb.v20120810#ConditionalCheckFailedException",
			"message": "The conditional request failed",
		})
		return
	}
	_ = json.NewEncoder(w).Encode(out)
}

func (f *fakeDynamo) table(in attributes) map[string]attributes {
	name := in["TableName"].(string)
	if f.tables[name] == nil {
		f.tables[name] = map[string]attributes{}
	}
	return f.tables[name]
}

func (f *fakeDynamo) getItem(in attributes) attributes {
	item, found := f.table(in)[itemKey(in["Key"].(attributes))]
	if !found {
		return attributes{}
	}
	return attributes{"Item": item}
}

func (f *fakeDynamo) putItem(in attributes) (attributes, bool) {
	item := in["Item"].(attributes)
	table := f.table(in)
	key := itemKey(item)
	if !conditionHolds(in, table[key] != nil) {
		return nil, false
	}
	table[key] = item
	return attributes{}, true
}

func (f *fakeDynamo) updateItem(in attributes) (attributes, bool) {
	keyAttrs := in["Key"].(attributes)
	table := f.table(in)
	key := itemKey(keyAttrs)
	item, found := table[key]
	if !conditionHolds(in, found) {
		return nil, false
	}
	if !found {
		item = attributes{}
		for name, value := range keyAttrs {
			item[name] = value
		}
	}

	expression := strings.TrimPrefix(in["UpdateExpression"].(string), "SET ")
	for _, assignment := range strings.Split(expression, ", ") {
		parts := strings.SplitN(assignment, " = ", 2)
		item[attributeName(in, parts[0])] = in["ExpressionAttributeValues"].(attributes)[parts[1]]
	}
	table[key] = item
	return attributes{}, true
}

func (f *fakeDynamo) query(in attributes) attributes {
	parts := strings.SplitN(in["KeyConditionExpression"].(string), " = ", 2)
	want := stringValue(in["ExpressionAttributeValues"].(attributes)[parts[1]])

	items := []interface{}{}
	for _, item := range sortedItems(f.table(in)) {
		if stringValue(item[parts[0]]) == want {
			items = append(items, item)
		}
	}
	return attributes{"Items": items, "Count": len(items), "ScannedCount": len(items)}
}

func (f *fakeDynamo) scan(in attributes) attributes {
	items := []interface{}{}
	for _, item := range sortedItems(f.table(in)) {
		if filter, ok := in["FilterExpression"].(string); ok {
			parts := strings.SplitN(filter, " = ", 2)
			want := stringValue(in["ExpressionAttributeValues"].(attributes)[parts[1]])
			if stringValue(item[attributeName(in, parts[0])]) != want {
				continue
			}
		}
		items = append(items, item)
	}

	if in["Select"] == "COUNT" {
		count := len(items)
		if limit, ok := in["Limit"].(float64); ok && count > int(limit) {
			count = int(limit)
		}
		return attributes{"Count": count, "ScannedCount": count}
	}
	return attributes{"Items": items, "Count": len(items), "ScannedCount": len(items)}
}

func (f *fakeDynamo) batchWrite(in attributes) attributes {
	f.batchCalls++
	requestItems := in["RequestItems"].(attributes)
	if f.throttle > 0 {
		f.throttle--
		return attributes{"UnprocessedItems": requestItems}
	}

	unprocessed := attributes{}
	for name, list := range requestItems {
		requests := list.([]interface{})
		if f.maxPerBatch > 0 && len(requests) > f.maxPerBatch {
			unprocessed[name] = requests[f.maxPerBatch:]
			requests = requests[:f.maxPerBatch]
		}

		table := f.table(attributes{"TableName": name})
		for _, raw := range requests {
			request := raw.(attributes)
			if del, ok := request["DeleteRequest"].(attributes); ok {
				delete(table, itemKey(del["Key"].(attributes)))
			}
			if put, ok := request["PutRequest"].(attributes); ok {
				item := put["Item"].(attributes)
				table[itemKey(item)] = item
			}
		}
	}
	return attributes{"UnprocessedItems": unprocessed}
}

func conditionHolds(in attributes, exists bool) bool {
	switch in["ConditionExpression"] {
	case "attribute_not_exists(PK)":
		return !exists
	case "attribute_exists(PK)":
		return exists
	default:
		return true
	}
}

func attributeName(in attributes, name string) string {
	if !strings.HasPrefix(name, "#") {
		return name
	}
	return in["ExpressionAttributeNames"].(attributes)[name].(string)
}

func itemKey(item attributes) string {
	return stringValue(item["PK"]) + "|" + stringValue(item["SK"])
}

func stringValue(value interface{}) string {
	attr, ok := value.(attributes)
	if !ok {
		return ""
	}
	s, _ := attr["S"].(string)
	return s
}

func sortedItems(table map[string]attributes) []attributes {
	keys := make([]string, 0, len(table))
	for key := range table {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	items := make([]attributes, 0, len(keys))
	for _, key := range keys {
		items = append(items, table[key])
	}
	return items
}

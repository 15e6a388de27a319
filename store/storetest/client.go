// Package storetest provides an in-memory DynamoDB double for tests.
package storetest

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Client is an in-memory stand-in for *dynamodb.Client covering the calls
// made by store.Table. Items are keyed by the string attribute "id".
// Scan and Query return items ordered by id.
type Client struct {
	mu     sync.Mutex
	tables map[string]map[string]map[string]types.AttributeValue
	calls  map[string]int

	// Err, when set, is returned by every item operation.
	Err error
}

// NewClient returns an empty Client.
func NewClient() *Client {
	return &Client{
		tables: make(map[string]map[string]map[string]types.AttributeValue),
		calls:  make(map[string]int),
	}
}

// Calls returns how many times op (e.g. "PutItem") was invoked.
func (c *Client) Calls(op string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls[op]
}

// TotalCalls returns the number of item operations invoked.
func (c *Client) TotalCalls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, v := range c.calls {
		n += v
	}
	return n
}

// Len returns the number of items in table.
func (c *Client) Len(table string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.tables[table])
}

// Raw returns a copy of the stored item, or nil.
func (c *Client) Raw(table, id string) map[string]types.AttributeValue {
	c.mu.Lock()
	defer c.mu.Unlock()
	item, ok := c.tables[table][id]
	if !ok {
		return nil
	}
	return copyItem(item)
}

func (c *Client) begin(op string) error {
	c.calls[op]++
	return c.Err
}

func (c *Client) table(name *string) map[string]map[string]types.AttributeValue {
	t, ok := c.tables[aws.ToString(name)]
	if !ok {
		t = make(map[string]map[string]types.AttributeValue)
		c.tables[aws.ToString(name)] = t
	}
	return t
}

func (c *Client) GetItem(_ context.Context, params *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.begin("GetItem"); err != nil {
		return nil, err
	}
	id, err := keyID(params.Key)
	if err != nil {
		return nil, err
	}
	out := &dynamodb.GetItemOutput{}
	if item, ok := c.table(params.TableName)[id]; ok {
		out.Item = copyItem(item)
	}
	return out, nil
}

func (c *Client) PutItem(_ context.Context, params *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.begin("PutItem"); err != nil {
		return nil, err
	}
	id, err := keyID(params.Item)
	if err != nil {
		return nil, err
	}
	c.table(params.TableName)[id] = copyItem(params.Item)
	return &dynamodb.PutItemOutput{}, nil
}

// UpdateItem supports "SET a = :x, #b = :y" expressions and upserts missing keys.
func (c *Client) UpdateItem(_ context.Context, params *dynamodb.UpdateItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.begin("UpdateItem"); err != nil {
		return nil, err
	}
	id, err := keyID(params.Key)
	if err != nil {
		return nil, err
	}
	assignments, err := parseAssignments(aws.ToString(params.UpdateExpression), "SET ", ", ",
		params.ExpressionAttributeNames, params.ExpressionAttributeValues)
	if err != nil {
		return nil, err
	}

	t := c.table(params.TableName)
	item, ok := t[id]
	if !ok {
		item = copyItem(params.Key)
	}
	for attr, v := range assignments {
		item[attr] = v
	}
	t[id] = item

	out := &dynamodb.UpdateItemOutput{}
	if params.ReturnValues == types.ReturnValueAllNew {
		out.Attributes = copyItem(item)
	}
	return out, nil
}

func (c *Client) DeleteItem(_ context.Context, params *dynamodb.DeleteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.begin("DeleteItem"); err != nil {
		return nil, err
	}
	id, err := keyID(params.Key)
	if err != nil {
		return nil, err
	}
	delete(c.table(params.TableName), id)
	return &dynamodb.DeleteItemOutput{}, nil
}

func (c *Client) Scan(_ context.Context, params *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.begin("Scan"); err != nil {
		return nil, err
	}
	items := c.sorted(params.TableName, nil)
	items = limit(items, params.Limit)
	return &dynamodb.ScanOutput{Items: items, Count: int32(len(items))}, nil
}

// Query supports a single "#attr = :value" key condition on any index.
func (c *Client) Query(_ context.Context, params *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.begin("Query"); err != nil {
		return nil, err
	}
	cond, err := parseAssignments(aws.ToString(params.KeyConditionExpression), "", " AND ",
		params.ExpressionAttributeNames, params.ExpressionAttributeValues)
	if err != nil {
		return nil, err
	}
	items := c.sorted(params.TableName, func(item map[string]types.AttributeValue) bool {
		for attr, want := range cond {
			got, ok := item[attr].(*types.AttributeValueMemberS)
			w, _ := want.(*types.AttributeValueMemberS)
			if !ok || w == nil || got.Value != w.Value {
				return false
			}
		}
		return true
	})
	items = limit(items, params.Limit)
	return &dynamodb.QueryOutput{Items: items, Count: int32(len(items))}, nil
}

func (c *Client) CreateTable(_ context.Context, params *dynamodb.CreateTableInput, _ ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls["CreateTable"]++
	name := aws.ToString(params.TableName)
	if _, ok := c.tables[name]; ok {
		return nil, &types.ResourceInUseException{Message: aws.String("table already exists: " + name)}
	}
	c.tables[name] = make(map[string]map[string]types.AttributeValue)
	return &dynamodb.CreateTableOutput{
		TableDescription: &types.TableDescription{
			TableName:   params.TableName,
			TableStatus: types.TableStatusActive,
		},
	}, nil
}

func (c *Client) DescribeTable(_ context.Context, params *dynamodb.DescribeTableInput, _ ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls["DescribeTable"]++
	name := aws.ToString(params.TableName)
	if _, ok := c.tables[name]; !ok {
		return nil, &types.ResourceNotFoundException{Message: aws.String("table not found: " + name)}
	}
	return &dynamodb.DescribeTableOutput{
		Table: &types.TableDescription{
			TableName:   params.TableName,
			TableStatus: types.TableStatusActive,
		},
	}, nil
}

func (c *Client) sorted(table *string, keep func(map[string]types.AttributeValue) bool) []map[string]types.AttributeValue {
	t := c.table(table)
	ids := make([]string, 0, len(t))
	for id := range t {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	items := make([]map[string]types.AttributeValue, 0, len(ids))
	for _, id := range ids {
		if keep == nil || keep(t[id]) {
			items = append(items, copyItem(t[id]))
		}
	}
	return items
}

func limit(items []map[string]types.AttributeValue, n *int32) []map[string]types.AttributeValue {
	if n != nil && *n > 0 && int(*n) < len(items) {
		return items[:*n]
	}
	return items
}

func keyID(key map[string]types.AttributeValue) (string, error) {
	v, ok := key["id"].(*types.AttributeValueMemberS)
	if !ok || v.Value == "" {
		return "", fmt.Errorf("storetest: key must have a non-empty string id")
	}
	return v.Value, nil
}

// parseAssignments parses "<prefix>lhs = rhs<sep>lhs = rhs" resolving #name
// and :value placeholders.
func parseAssignments(expr, prefix, sep string, names map[string]string, values map[string]types.AttributeValue) (map[string]types.AttributeValue, error) {
	if !strings.HasPrefix(expr, prefix) {
		return nil, fmt.Errorf("storetest: unsupported expression %q", expr)
	}
	out := make(map[string]types.AttributeValue)
	for _, clause := range strings.Split(strings.TrimPrefix(expr, prefix), sep) {
		lhs, rhs, ok := strings.Cut(clause, " = ")
		if !ok {
			return nil, fmt.Errorf("storetest: unsupported clause %q", clause)
		}
		attr := strings.TrimSpace(lhs)
		if strings.HasPrefix(attr, "#") {
			resolved, ok := names[attr]
			if !ok {
				return nil, fmt.Errorf("storetest: undefined name %s", attr)
			}
			attr = resolved
		}
		v, ok := values[strings.TrimSpace(rhs)]
		if !ok {
			return nil, fmt.Errorf("storetest: undefined value %s", rhs)
		}
		out[attr] = v
	}
	return out, nil
}

func copyItem(item map[string]types.AttributeValue) map[string]types.AttributeValue {
	out := make(map[string]types.AttributeValue, len(item))
	for k, v := range item {
		out[k] = v
	}
	return out
}

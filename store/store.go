package store

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/jacentio/todos/todo"
)

// Table provides operations on the todo table.
type Table struct {
	client API
	config Config
}

// New creates a Table over an existing client.
func New(client API, config Config) *Table {
	config.validate()
	return &Table{
		client: client,
		config: config,
	}
}

// Name returns the table name.
func (t *Table) Name() string {
	return t.config.TableName
}

// Config returns the effective configuration.
func (t *Table) Config() Config {
	return t.config
}

// Put writes the full item unconditionally, overwriting any existing item
// with the same id.
func (t *Table) Put(ctx context.Context, item todo.Item) error {
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("marshal item: %w", err)
	}

	_, err = t.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(t.config.TableName),
		Item:      av,
	})
	if err != nil {
		return fmt.Errorf("put item %s: %w", item.ID, err)
	}
	return nil
}

// Get retrieves an item by id, returning ErrNotFound if it is missing.
func (t *Table) Get(ctx context.Context, id string) (todo.Item, error) {
	result, err := t.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(t.config.TableName),
		Key:       itemKey(id),
	})
	if err != nil {
		return todo.Item{}, fmt.Errorf("get item %s: %w", id, err)
	}
	if len(result.Item) == 0 {
		return todo.Item{}, ErrNotFound
	}

	var item todo.Item
	if err := attributevalue.UnmarshalMap(result.Item, &item); err != nil {
		return todo.Item{}, fmt.Errorf("unmarshal item %s: %w", id, err)
	}
	return item, nil
}

// Scan reads a single page of at most limit items in store order.
// A limit below 1 uses Config.ScanLimit.
func (t *Table) Scan(ctx context.Context, limit int32) ([]todo.Item, error) {
	result, err := t.client.Scan(ctx, &dynamodb.ScanInput{
		TableName: aws.String(t.config.TableName),
		Limit:     aws.Int32(t.limit(limit)),
	})
	if err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	return unmarshalItems(result.Items)
}

// QueryByStatus reads a single page of at most limit items from the status
// index. A limit below 1 uses Config.ScanLimit.
func (t *Table) QueryByStatus(ctx context.Context, status string, limit int32) ([]todo.Item, error) {
	keyCond, names, values := statusKeyCondition(status)

	result, err := t.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(t.config.TableName),
		IndexName:                 aws.String(t.config.StatusIndex),
		KeyConditionExpression:    aws.String(keyCond),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
		Limit:                     aws.Int32(t.limit(limit)),
	})
	if err != nil {
		return nil, fmt.Errorf("query status %s: %w", status, err)
	}
	return unmarshalItems(result.Items)
}

// Update sets the fields present in u and updated_at, returning every
// attribute of the item after the update. There is no existence check: a
// missing id is created holding only the key and the assigned fields.
func (t *Table) Update(ctx context.Context, id string, u todo.Update, updatedAt string) (map[string]any, error) {
	expr := buildUpdate(u, updatedAt)

	result, err := t.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(t.config.TableName),
		Key:                       itemKey(id),
		UpdateExpression:          aws.String(expr.Expression),
		ExpressionAttributeNames:  expr.Names,
		ExpressionAttributeValues: expr.Values,
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		return nil, fmt.Errorf("update item %s: %w", id, err)
	}

	attrs := map[string]any{}
	if err := attributevalue.UnmarshalMap(result.Attributes, &attrs); err != nil {
		return nil, fmt.Errorf("unmarshal attributes %s: %w", id, err)
	}
	return attrs, nil
}

// Delete removes an item by id. Deleting a missing id is not an error.
func (t *Table) Delete(ctx context.Context, id string) error {
	_, err := t.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(t.config.TableName),
		Key:       itemKey(id),
	})
	if err != nil {
		return fmt.Errorf("delete item %s: %w", id, err)
	}
	return nil
}

func (t *Table) limit(limit int32) int32 {
	if limit < 1 {
		return t.config.ScanLimit
	}
	return limit
}

// unmarshalItems converts raw items, always returning a non-nil slice.
func unmarshalItems(raw []map[string]types.AttributeValue) ([]todo.Item, error) {
	items := make([]todo.Item, 0, len(raw))
	for _, r := range raw {
		var item todo.Item
		if err := attributevalue.UnmarshalMap(r, &item); err != nil {
			return nil, fmt.Errorf("unmarshal item: %w", err)
		}
		items = append(items, item)
	}
	return items, nil
}

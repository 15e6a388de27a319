package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// tableReadyTimeout bounds how long EnsureTable waits for a new table.
const tableReadyTimeout = 2 * time.Minute

// CreateTableInput returns the table definition: hash key id, on-demand
// billing, and a status GSI projecting all attributes.
func (t *Table) CreateTableInput() *dynamodb.CreateTableInput {
	return &dynamodb.CreateTableInput{
		TableName:   aws.String(t.config.TableName),
		BillingMode: types.BillingModePayPerRequest,
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String(attrID), KeyType: types.KeyTypeHash},
		},
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String(attrID), AttributeType: types.ScalarAttributeTypeS},
			{AttributeName: aws.String(attrStatus), AttributeType: types.ScalarAttributeTypeS},
		},
		GlobalSecondaryIndexes: []types.GlobalSecondaryIndex{
			{
				IndexName: aws.String(t.config.StatusIndex),
				KeySchema: []types.KeySchemaElement{
					{AttributeName: aws.String(attrStatus), KeyType: types.KeyTypeHash},
				},
				Projection: &types.Projection{ProjectionType: types.ProjectionTypeAll},
			},
		},
	}
}

// EnsureTable creates the table if it does not exist and waits until it is
// active. It reports whether the table was created.
func (t *Table) EnsureTable(ctx context.Context) (bool, error) {
	_, err := t.client.DescribeTable(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(t.config.TableName),
	})
	if err == nil {
		return false, nil
	}
	var notFound *types.ResourceNotFoundException
	if !errors.As(err, &notFound) {
		return false, fmt.Errorf("describe table %s: %w", t.config.TableName, err)
	}

	if _, err := t.client.CreateTable(ctx, t.CreateTableInput()); err != nil {
		var inUse *types.ResourceInUseException
		if !errors.As(err, &inUse) {
			return false, fmt.Errorf("create table %s: %w", t.config.TableName, err)
		}
	}

	waiter := dynamodb.NewTableExistsWaiter(t.client)
	if err := waiter.Wait(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(t.config.TableName),
	}, tableReadyTimeout); err != nil {
		return false, fmt.Errorf("wait for table %s: %w", t.config.TableName, err)
	}
	return true, nil
}

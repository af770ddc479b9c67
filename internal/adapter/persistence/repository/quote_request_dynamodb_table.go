package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DynamoDBTableAPI is the subset of the DynamoDB client used to bootstrap tables.
type DynamoDBTableAPI interface {
	CreateTable(ctx context.Context, params *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error)
}

// QuoteRequestsTableInput describes the quote request table and its GSIs.
func QuoteRequestsTableInput(tableName string) *dynamodb.CreateTableInput {
	if tableName == "" {
		tableName = DefaultQuoteRequestsTableName
	}
	s := types.ScalarAttributeTypeS
	gsi := func(name, hash string) types.GlobalSecondaryIndex {
		return types.GlobalSecondaryIndex{
			IndexName: aws.String(name),
			KeySchema: []types.KeySchemaElement{
				{AttributeName: aws.String(hash), KeyType: types.KeyTypeHash},
				{AttributeName: aws.String("created_at"), KeyType: types.KeyTypeRange},
			},
			Projection: &types.Projection{ProjectionType: types.ProjectionTypeAll},
		}
	}

	return &dynamodb.CreateTableInput{
		TableName:   aws.String(tableName),
		BillingMode: types.BillingModePayPerRequest,
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String("id"), AttributeType: s},
			{AttributeName: aws.String("workshop_id"), AttributeType: s},
			{AttributeName: aws.String("motorist_email"), AttributeType: s},
			{AttributeName: aws.String("motorist_account_id"), AttributeType: s},
			{AttributeName: aws.String("created_at"), AttributeType: s},
		},
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String("id"), KeyType: types.KeyTypeHash},
		},
		GlobalSecondaryIndexes: []types.GlobalSecondaryIndex{
			gsi(QuoteRequestsByWorkshopIndex, "workshop_id"),
			gsi(QuoteRequestsByMotoristIndex, "motorist_email"),
			gsi(QuoteRequestsByAccountIndex, "motorist_account_id"),
		},
	}
}

// CreateQuoteRequestsTable creates the table. It reports created=false when
// the table already exists.
func CreateQuoteRequestsTable(ctx context.Context, ddb DynamoDBTableAPI, tableName string) (bool, error) {
	_, err := ddb.CreateTable(ctx, QuoteRequestsTableInput(tableName))
	if err != nil {
		var inUse *types.ResourceInUseException
		if errors.As(err, &inUse) {
			return false, nil
		}
		return false, fmt.Errorf("repository: create table %s: %w", tableName, err)
	}
	return true, nil
}

package repository

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTableCreator struct {
	in  *dynamodb.CreateTableInput
	err error
}

func (f *fakeTableCreator) CreateTable(_ context.Context, in *dynamodb.CreateTableInput, _ ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error) {
	f.in = in
	return &dynamodb.CreateTableOutput{}, f.err
}

func TestCreateQuoteRequestsTable(t *testing.T) {
	f := &fakeTableCreator{}
	created, err := CreateQuoteRequestsTable(context.Background(), f, "quotes")
	require.NoError(t, err)
	assert.True(t, created)

	assert.Equal(t, "quotes", aws.ToString(f.in.TableName))
	var names []string
	for _, g := range f.in.GlobalSecondaryIndexes {
		names = append(names, aws.ToString(g.IndexName))
		assert.Equal(t, "created_at", aws.ToString(g.KeySchema[1].AttributeName))
	}
	assert.ElementsMatch(t, []string{QuoteRequestsByWorkshopIndex, QuoteRequestsByMotoristIndex, QuoteRequestsByAccountIndex}, names)
}

func TestCreateQuoteRequestsTable_AlreadyExists(t *testing.T) {
	f := &fakeTableCreator{err: &types.ResourceInUseException{Message: aws.String("exists")}}
	created, err := CreateQuoteRequestsTable(context.Background(), f, "")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, DefaultQuoteRequestsTableName, aws.ToString(f.in.TableName))
}

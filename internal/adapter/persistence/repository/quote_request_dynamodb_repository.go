package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"instauto/internal/domain/entities"
	"instauto/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	DefaultQuoteRequestsTableName = "quote_requests"
	QuoteRequestsByWorkshopIndex  = "workshop_id-created_at-index"
	QuoteRequestsByMotoristIndex  = "motorist_email-created_at-index"
	QuoteRequestsByAccountIndex   = "motorist_account_id-created_at-index"
)

type quoteRequestItem struct {
	ID                string   `dynamodbav:"id"`
	WorkshopID        string   `dynamodbav:"workshop_id"`
	MotoristAccountID string   `dynamodbav:"motorist_account_id,omitempty"`
	MotoristName      string   `dynamodbav:"motorist_name"`
	MotoristEmail     string   `dynamodbav:"motorist_email,omitempty"`
	MotoristPhone     string   `dynamodbav:"motorist_phone,omitempty"`
	VehicleID         string   `dynamodbav:"vehicle_id,omitempty"`
	VehicleBrand      string   `dynamodbav:"vehicle_brand"`
	VehicleModel      string   `dynamodbav:"vehicle_model"`
	VehicleYear       int      `dynamodbav:"vehicle_year"`
	VehiclePlate      string   `dynamodbav:"vehicle_plate,omitempty"`
	ServiceType       string   `dynamodbav:"service_type"`
	Description       string   `dynamodbav:"description"`
	Urgency           string   `dynamodbav:"urgency"`
	Images            []string `dynamodbav:"images,omitempty"`
	Status            string   `dynamodbav:"status"`
	WorkshopResponse  string   `dynamodbav:"workshop_response,omitempty"`
	EstimatedPrice    string   `dynamodbav:"estimated_price,omitempty"`
	EstimatedDays     *int     `dynamodbav:"estimated_days,omitempty"`
	RespondedAt       string   `dynamodbav:"responded_at,omitempty"`
	CreatedAt         string   `dynamodbav:"created_at"`
	UpdatedAt         string   `dynamodbav:"updated_at"`
}

// DynamoDBAPI is the subset of the DynamoDB client used by the quote store.
type DynamoDBAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

// QuoteRequestDynamoRepository persists QuoteRequest entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI workshop_id-created_at-index: workshop_id (HASH), created_at (RANGE)
//   - GSI motorist_email-created_at-index: motorist_email (HASH), created_at (RANGE)
//   - GSI motorist_account_id-created_at-index: motorist_account_id (HASH), created_at (RANGE)
//
// Both motorist keys are omitted when empty, which keeps the item out of that
// index instead of failing the write.
//
// Status changes are conditional writes on #status = :from, so concurrent
// writers cannot both move the same request.
type QuoteRequestDynamoRepository struct {
	ddb       DynamoDBAPI
	tableName string
}

var _ interfaces.IQuoteRequestRepository = (*QuoteRequestDynamoRepository)(nil)

func NewQuoteRequestDynamoRepository(ddb DynamoDBAPI, tableName string) *QuoteRequestDynamoRepository {
	if tableName == "" {
		tableName = DefaultQuoteRequestsTableName
	}
	return &QuoteRequestDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *QuoteRequestDynamoRepository) Create(ctx context.Context, q entities.QuoteRequest) (entities.QuoteRequest, error) {
	av, err := attributevalue.MarshalMap(toQuoteRequestItem(q))
	if err != nil {
		return entities.QuoteRequest{}, fmt.Errorf("repository: marshal quote request: %w", err)
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		return entities.QuoteRequest{}, fmt.Errorf("repository: put quote request %s: %w", q.ID, err)
	}
	return q, nil
}

func (r *QuoteRequestDynamoRepository) GetByID(ctx context.Context, id string) (entities.QuoteRequest, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.QuoteRequest{}, fmt.Errorf("repository: get quote request %s: %w", id, err)
	}
	if len(out.Item) == 0 {
		return entities.QuoteRequest{}, nil
	}

	var it quoteRequestItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.QuoteRequest{}, fmt.Errorf("repository: unmarshal quote request %s: %w", id, err)
	}
	return fromQuoteRequestItem(it), nil
}

func (r *QuoteRequestDynamoRepository) ApplyStatusChange(ctx context.Context, id string, change entities.StatusChange) (entities.QuoteRequest, error) {
	return r.update(ctx, id, change.From, func() (string, map[string]types.AttributeValue, map[string]string) {
		expr := "SET #status = :to, #updated_at = :updated_at"
		vals := map[string]types.AttributeValue{
			":to":         &types.AttributeValueMemberS{Value: string(change.To)},
			":updated_at": &types.AttributeValueMemberS{Value: formatTime(change.At)},
		}
		names := map[string]string{
			"#updated_at": "updated_at",
		}

		// The response is written together with the transition, never afterwards.
		if resp := change.Response; resp != nil {
			expr += ", #workshop_response = :workshop_response, #responded_at = :responded_at"
			vals[":workshop_response"] = &types.AttributeValueMemberS{Value: resp.Message}
			vals[":responded_at"] = &types.AttributeValueMemberS{Value: formatTime(resp.RespondedAt)}
			names["#workshop_response"] = "workshop_response"
			names["#responded_at"] = "responded_at"
			if resp.EstimatedPrice != nil {
				expr += ", #estimated_price = :estimated_price"
				vals[":estimated_price"] = &types.AttributeValueMemberS{Value: floatToString(*resp.EstimatedPrice)}
				names["#estimated_price"] = "estimated_price"
			}
			if resp.EstimatedDays != nil {
				expr += ", #estimated_days = :estimated_days"
				vals[":estimated_days"] = &types.AttributeValueMemberN{Value: strconv.Itoa(*resp.EstimatedDays)}
				names["#estimated_days"] = "estimated_days"
			}
		}
		return expr, vals, names
	})
}

func (r *QuoteRequestDynamoRepository) ListByWorkshop(ctx context.Context, workshopID string, status entities.QuoteStatus) ([]entities.QuoteRequest, error) {
	return r.query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(QuoteRequestsByWorkshopIndex),
		KeyConditionExpression: aws.String("#workshop_id = :workshop_id"),
		FilterExpression:       aws.String("#status = :status"),
		ExpressionAttributeNames: map[string]string{
			"#workshop_id": "workshop_id",
			"#status":      "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":workshop_id": &types.AttributeValueMemberS{Value: workshopID},
			":status":      &types.AttributeValueMemberS{Value: string(status)},
		},
		ScanIndexForward: aws.Bool(false),
	})
}

func (r *QuoteRequestDynamoRepository) ListByMotoristEmail(ctx context.Context, email string) ([]entities.QuoteRequest, error) {
	return r.queryIndex(ctx, QuoteRequestsByMotoristIndex, "motorist_email", email)
}

func (r *QuoteRequestDynamoRepository) ListByMotoristAccount(ctx context.Context, accountID string) ([]entities.QuoteRequest, error) {
	return r.queryIndex(ctx, QuoteRequestsByAccountIndex, "motorist_account_id", accountID)
}

// queryIndex lists every item whose hash key attr equals value, newest first.
func (r *QuoteRequestDynamoRepository) queryIndex(ctx context.Context, index, attr, value string) ([]entities.QuoteRequest, error) {
	if value == "" {
		return nil, nil
	}
	return r.query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(index),
		KeyConditionExpression: aws.String("#key = :key"),
		ExpressionAttributeNames: map[string]string{
			"#key": attr,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":key": &types.AttributeValueMemberS{Value: value},
		},
		ScanIndexForward: aws.Bool(false),
	})
}

func (r *QuoteRequestDynamoRepository) query(ctx context.Context, in *dynamodb.QueryInput) ([]entities.QuoteRequest, error) {
	var out []entities.QuoteRequest
	for {
		page, err := r.ddb.Query(ctx, in)
		if err != nil {
			return nil, fmt.Errorf("repository: query %s: %w", aws.ToString(in.IndexName), err)
		}

		var items []quoteRequestItem
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &items); err != nil {
			return nil, fmt.Errorf("repository: unmarshal quote requests: %w", err)
		}
		for _, it := range items {
			out = append(out, fromQuoteRequestItem(it))
		}

		if len(page.LastEvaluatedKey) == 0 {
			return out, nil
		}
		in.ExclusiveStartKey = page.LastEvaluatedKey
	}
}

func (r *QuoteRequestDynamoRepository) update(
	ctx context.Context,
	id string,
	from entities.QuoteStatus,
	build func() (updateExpr string, values map[string]types.AttributeValue, names map[string]string),
) (entities.QuoteRequest, error) {
	updateExpr, values, names := build()
	values[":from"] = &types.AttributeValueMemberS{Value: string(from)}

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression:       aws.String("attribute_exists(#id) AND #status = :from"),
		UpdateExpression:          aws.String(updateExpr),
		ExpressionAttributeValues: values,
		ExpressionAttributeNames:  mergeNames(names, map[string]string{"#id": "id", "#status": "status"}),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.QuoteRequest{}, nil
		}
		return entities.QuoteRequest{}, fmt.Errorf("repository: update quote request %s: %w", id, err)
	}
	if len(out.Attributes) == 0 {
		return entities.QuoteRequest{}, nil
	}
	var it quoteRequestItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.QuoteRequest{}, fmt.Errorf("repository: unmarshal quote request %s: %w", id, err)
	}
	return fromQuoteRequestItem(it), nil
}

func toQuoteRequestItem(q entities.QuoteRequest) quoteRequestItem {
	it := quoteRequestItem{
		ID:                q.ID,
		WorkshopID:        q.WorkshopID,
		MotoristAccountID: q.MotoristAccountID,
		MotoristName:      q.Motorist.Name,
		MotoristEmail:     q.Motorist.NormalizedEmail(),
		MotoristPhone:     q.Motorist.Phone,
		VehicleID:         q.Vehicle.VehicleID,
		VehicleBrand:      q.Vehicle.Brand,
		VehicleModel:      q.Vehicle.Model,
		VehicleYear:       q.Vehicle.Year,
		VehiclePlate:      q.Vehicle.Plate,
		ServiceType:       string(q.ServiceType),
		Description:       q.Description,
		Urgency:           string(q.Urgency),
		Images:            q.Images,
		Status:            string(q.Status),
		CreatedAt:         formatTime(q.CreatedAt),
		UpdatedAt:         formatTime(q.UpdatedAt),
	}
	if resp := q.Response; resp != nil {
		it.WorkshopResponse = resp.Message
		it.EstimatedDays = resp.EstimatedDays
		it.RespondedAt = formatTime(resp.RespondedAt)
		if resp.EstimatedPrice != nil {
			it.EstimatedPrice = floatToString(*resp.EstimatedPrice)
		}
	}
	return it
}

func fromQuoteRequestItem(it quoteRequestItem) entities.QuoteRequest {
	q := entities.QuoteRequest{
		ID:                it.ID,
		WorkshopID:        it.WorkshopID,
		MotoristAccountID: it.MotoristAccountID,
		Motorist: entities.MotoristContact{
			Name:  it.MotoristName,
			Email: it.MotoristEmail,
			Phone: it.MotoristPhone,
		},
		Vehicle: entities.Vehicle{
			VehicleID: it.VehicleID,
			Brand:     it.VehicleBrand,
			Model:     it.VehicleModel,
			Year:      it.VehicleYear,
			Plate:     it.VehiclePlate,
		},
		ServiceType: entities.ServiceType(it.ServiceType),
		Description: it.Description,
		Urgency:     entities.Urgency(it.Urgency),
		Images:      it.Images,
		Status:      entities.QuoteStatus(it.Status),
		CreatedAt:   parseTime(it.CreatedAt),
		UpdatedAt:   parseTime(it.UpdatedAt),
	}
	if it.RespondedAt != "" {
		q.Response = &entities.WorkshopResponse{
			Message:       it.WorkshopResponse,
			EstimatedDays: it.EstimatedDays,
			RespondedAt:   parseTime(it.RespondedAt),
		}
		if it.EstimatedPrice != "" {
			if p, err := strconv.ParseFloat(it.EstimatedPrice, 64); err == nil {
				q.Response.EstimatedPrice = &p
			}
		}
	}
	return q
}

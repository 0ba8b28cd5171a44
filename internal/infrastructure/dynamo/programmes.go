package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/urep/registration-api/internal/domain"
)

// ProgrammeRepo provides typed DynamoDB operations for the programmes table.
type ProgrammeRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewProgrammeRepo(client *dynamodb.Client, tableName string) *ProgrammeRepo {
	return &ProgrammeRepo{client: client, tableName: tableName}
}

func (r *ProgrammeRepo) Put(ctx context.Context, p *domain.Programme) error {
	item, err := attributevalue.MarshalMap(p)
	if err != nil {
		return fmt.Errorf("marshal programme: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *ProgrammeRepo) Get(ctx context.Context, programmeID string) (*domain.Programme, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("programme_id", programmeID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("programme not found: %w", domain.ErrNotFound)
	}
	var p domain.Programme
	if err := attributevalue.UnmarshalMap(out.Item, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// GetByName queries the name GSI; used for duplicate detection on create.
func (r *ProgrammeRepo) GetByName(ctx context.Context, name string) (*domain.Programme, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String("name-index"),
		KeyConditionExpression:    aws.String("#n = :v"),
		ExpressionAttributeNames:  map[string]string{"#n": "name"},
		ExpressionAttributeValues: map[string]types.AttributeValue{":v": &types.AttributeValueMemberS{Value: name}},
		Limit:                     aws.Int32(1),
	})
	if err != nil {
		return nil, err
	}
	if len(out.Items) == 0 {
		return nil, fmt.Errorf("programme not found: %w", domain.ErrNotFound)
	}
	var p domain.Programme
	if err := attributevalue.UnmarshalMap(out.Items[0], &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProgrammeRepo) Scan(ctx context.Context) ([]domain.Programme, error) {
	out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
	})
	if err != nil {
		return nil, err
	}
	var programmes []domain.Programme
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &programmes); err != nil {
		return nil, err
	}
	return programmes, nil
}

func (r *ProgrammeRepo) Update(ctx context.Context, programmeID string, updates map[string]interface{}) error {
	expr, names, values, err := buildUpdateExpr(updates)
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("programme_id", programmeID),
		UpdateExpression:          aws.String(expr),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
	})
	return err
}

func (r *ProgrammeRepo) Delete(ctx context.Context, programmeID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("programme_id", programmeID),
	})
	return err
}

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

// FormFieldRepo provides typed DynamoDB operations for the form_fields table.
type FormFieldRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewFormFieldRepo(client *dynamodb.Client, tableName string) *FormFieldRepo {
	return &FormFieldRepo{client: client, tableName: tableName}
}

func (r *FormFieldRepo) Put(ctx context.Context, f *domain.FormField) error {
	item, err := attributevalue.MarshalMap(f)
	if err != nil {
		return fmt.Errorf("marshal form field: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *FormFieldRepo) Get(ctx context.Context, fieldID string) (*domain.FormField, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("field_id", fieldID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("form field not found: %w", domain.ErrNotFound)
	}
	var f domain.FormField
	if err := attributevalue.UnmarshalMap(out.Item, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *FormFieldRepo) ListByProgramme(ctx context.Context, programmeID string) ([]domain.FormField, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String("programme_id-index"),
		KeyConditionExpression:    aws.String("programme_id = :v"),
		ExpressionAttributeValues: map[string]types.AttributeValue{":v": &types.AttributeValueMemberS{Value: programmeID}},
	})
	if err != nil {
		return nil, err
	}
	var fields []domain.FormField
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

func (r *FormFieldRepo) Update(ctx context.Context, fieldID string, updates map[string]interface{}) error {
	expr, names, values, err := buildUpdateExpr(updates)
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("field_id", fieldID),
		UpdateExpression:          aws.String(expr),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
	})
	return err
}

func (r *FormFieldRepo) Delete(ctx context.Context, fieldID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("field_id", fieldID),
	})
	return err
}

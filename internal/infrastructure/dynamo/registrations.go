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

// RegistrationRepo provides typed DynamoDB operations for the registrations table.
type RegistrationRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewRegistrationRepo(client *dynamodb.Client, tableName string) *RegistrationRepo {
	return &RegistrationRepo{client: client, tableName: tableName}
}

func (r *RegistrationRepo) Put(ctx context.Context, reg *domain.Registration) error {
	item, err := attributevalue.MarshalMap(reg)
	if err != nil {
		return fmt.Errorf("marshal registration: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *RegistrationRepo) Get(ctx context.Context, registrationID string) (*domain.Registration, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("registration_id", registrationID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("registration not found: %w", domain.ErrNotFound)
	}
	var reg domain.Registration
	if err := attributevalue.UnmarshalMap(out.Item, &reg); err != nil {
		return nil, err
	}
	return &reg, nil
}

func (r *RegistrationRepo) Delete(ctx context.Context, registrationID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("registration_id", registrationID),
	})
	return err
}

func (r *RegistrationRepo) ListByUser(ctx context.Context, userID string) ([]domain.Registration, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String("user_id-index"),
		KeyConditionExpression:    aws.String("user_id = :v"),
		ExpressionAttributeValues: map[string]types.AttributeValue{":v": &types.AttributeValueMemberS{Value: userID}},
	})
	if err != nil {
		return nil, err
	}
	var regs []domain.Registration
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &regs); err != nil {
		return nil, err
	}
	return regs, nil
}

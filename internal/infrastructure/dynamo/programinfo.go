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

// ProgramInfoRepo provides typed DynamoDB operations for the program_info table.
type ProgramInfoRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewProgramInfoRepo(client *dynamodb.Client, tableName string) *ProgramInfoRepo {
	return &ProgramInfoRepo{client: client, tableName: tableName}
}

func (r *ProgramInfoRepo) Put(ctx context.Context, info *domain.ProgramInfo) error {
	item, err := attributevalue.MarshalMap(info)
	if err != nil {
		return fmt.Errorf("marshal program info: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *ProgramInfoRepo) ListByUser(ctx context.Context, userID string) ([]domain.ProgramInfo, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String("user_id-index"),
		KeyConditionExpression:    aws.String("user_id = :v"),
		ExpressionAttributeValues: map[string]types.AttributeValue{":v": &types.AttributeValueMemberS{Value: userID}},
	})
	if err != nil {
		return nil, err
	}
	var infos []domain.ProgramInfo
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &infos); err != nil {
		return nil, err
	}
	return infos, nil
}

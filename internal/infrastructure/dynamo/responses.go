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

// ResponseRepo provides typed DynamoDB operations for the responses table.
type ResponseRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewResponseRepo(client *dynamodb.Client, tableName string) *ResponseRepo {
	return &ResponseRepo{client: client, tableName: tableName}
}

func (r *ResponseRepo) Put(ctx context.Context, resp *domain.Response) error {
	item, err := attributevalue.MarshalMap(resp)
	if err != nil {
		return fmt.Errorf("marshal response: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

// PutBatch writes all answers of one registration. DynamoDB caps
// BatchWriteItem at 25 items, so larger submissions are chunked.
func (r *ResponseRepo) PutBatch(ctx context.Context, resps []domain.Response) error {
	const maxBatch = 25
	for start := 0; start < len(resps); start += maxBatch {
		end := start + maxBatch
		if end > len(resps) {
			end = len(resps)
		}
		reqs := make([]types.WriteRequest, 0, end-start)
		for i := start; i < end; i++ {
			item, err := attributevalue.MarshalMap(resps[i])
			if err != nil {
				return fmt.Errorf("marshal response: %w", err)
			}
			reqs = append(reqs, types.WriteRequest{
				PutRequest: &types.PutRequest{Item: item},
			})
		}
		_, err := r.client.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
			RequestItems: map[string][]types.WriteRequest{r.tableName: reqs},
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *ResponseRepo) ListByRegistration(ctx context.Context, registrationID string) ([]domain.Response, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String("registration_id-index"),
		KeyConditionExpression:    aws.String("registration_id = :v"),
		ExpressionAttributeValues: map[string]types.AttributeValue{":v": &types.AttributeValueMemberS{Value: registrationID}},
	})
	if err != nil {
		return nil, err
	}
	var resps []domain.Response
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &resps); err != nil {
		return nil, err
	}
	return resps, nil
}

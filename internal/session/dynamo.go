package session

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DynamoStore persists sessions as whole items keyed by session_id.
type DynamoStore struct {
	client *dynamodb.Client
	table  string
}

func NewDynamoStore(client *dynamodb.Client, table string) *DynamoStore {
	return &DynamoStore{client: client, table: table}
}

func (d *DynamoStore) Get(ctx context.Context, id string) (Session, error) {
	out, err := d.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(d.table),
		Key: map[string]types.AttributeValue{
			"session_id": &types.AttributeValueMemberS{Value: id},
		},
	})
	if err != nil {
		return Session{}, err
	}
	if len(out.Item) == 0 {
		return Session{}, ErrNotFound
	}
	var s Session
	if err := attributevalue.UnmarshalMap(out.Item, &s); err != nil {
		return Session{}, fmt.Errorf("decoding session %s: %w", id, err)
	}
	return s, nil
}

func (d *DynamoStore) Put(ctx context.Context, s Session) error {
	item, err := attributevalue.MarshalMap(s)
	if err != nil {
		return fmt.Errorf("encoding session %s: %w", s.SessionID, err)
	}
	_, err = d.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(d.table),
		Item:      item,
	})
	return err
}

// PutIfVersion writes the session only when the stored version still
// matches expected, bumping the version on success. Callers that want
// stronger-than-last-write-wins semantics can opt in; the fulfillment
// engine does not.
func (d *DynamoStore) PutIfVersion(ctx context.Context, s Session, expected int64) error {
	s.Version = expected + 1
	item, err := attributevalue.MarshalMap(s)
	if err != nil {
		return fmt.Errorf("encoding session %s: %w", s.SessionID, err)
	}
	_, err = d.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(d.table),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(session_id) OR version = :v"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":v": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", expected)},
		},
	})
	return err
}

package users

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/BlackCoffeeCode/SneakerMarketWebApp/internal/aws"
)

// Store reads the users table.
type Store struct {
	client    aws.DynamoDBAPI
	tableName string
}

// NewStore creates a new users Store.
func NewStore(client aws.DynamoDBAPI, tableName string) *Store {
	return &Store{client: client, tableName: tableName}
}

// Get fetches a user by id. Returns (nil, nil) if not found.
func (s *Store) Get(ctx context.Context, userID string) (*User, error) {
	out, err := s.client.GetItem(ctx, &dyn.GetItemInput{
		TableName: &s.tableName,
		Key: map[string]types.AttributeValue{
			"user_id": &types.AttributeValueMemberS{Value: userID},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, nil
	}
	var u User
	if err := attributevalue.UnmarshalMap(out.Item, &u); err != nil {
		return nil, fmt.Errorf("unmarshal user: %w", err)
	}
	return &u, nil
}

// BatchGet fetches many users keyed by id. Missing users are absent from the
// result map.
func (s *Store) BatchGet(ctx context.Context, ids []string) (map[string]User, error) {
	result := make(map[string]User, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	seen := make(map[string]struct{}, len(ids))
	unique := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	// BatchGetItem caps at 100 keys per request
	for start := 0; start < len(unique); start += 100 {
		end := start + 100
		if end > len(unique) {
			end = len(unique)
		}

		keys := make([]map[string]types.AttributeValue, 0, end-start)
		for _, id := range unique[start:end] {
			keys = append(keys, map[string]types.AttributeValue{
				"user_id": &types.AttributeValueMemberS{Value: id},
			})
		}

		request := map[string]types.KeysAndAttributes{
			s.tableName: {Keys: keys},
		}
		for len(request) > 0 {
			out, err := s.client.BatchGetItem(ctx, &dyn.BatchGetItemInput{
				RequestItems: request,
			})
			if err != nil {
				return nil, fmt.Errorf("batch get items: %w", err)
			}
			for _, item := range out.Responses[s.tableName] {
				var u User
				if err := attributevalue.UnmarshalMap(item, &u); err != nil {
					return nil, fmt.Errorf("unmarshal user: %w", err)
				}
				result[u.UserID] = u
			}
			request = out.UnprocessedKeys
		}
	}

	return result, nil
}

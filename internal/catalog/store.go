package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"

	"github.com/BlackCoffeeCode/SneakerMarketWebApp/internal/aws"
)

// batchGetLimit is the DynamoDB BatchGetItem hard limit per request.
const batchGetLimit = 100

// ErrAlreadyExists indicates a create collided with an existing sneaker id.
var ErrAlreadyExists = errors.New("sneaker already exists")

// Store encapsulates operations on the sneakers table.
type Store struct {
	client    aws.DynamoDBAPI
	tableName string
	nowFunc   func() time.Time
}

// NewStore creates a new catalog Store.
func NewStore(client aws.DynamoDBAPI, tableName string) *Store {
	return &Store{
		client:    client,
		tableName: tableName,
		nowFunc:   time.Now,
	}
}

// Create persists a new sneaker. The conditional put guards against id reuse.
func (s *Store) Create(ctx context.Context, sneaker Sneaker) error {
	now := s.nowFunc()
	sneaker.CreatedAt = now
	sneaker.UpdatedAt = now

	item, err := attributevalue.MarshalMap(sneaker)
	if err != nil {
		return fmt.Errorf("marshal sneaker: %w", err)
	}

	input := &dyn.PutItemInput{
		TableName:           &s.tableName,
		Item:                item,
		ConditionExpression: awsString("attribute_not_exists(sneaker_id)"),
	}

	if _, err := s.client.PutItem(ctx, input); err != nil {
		var ae smithy.APIError
		if errors.As(err, &ae) && ae.ErrorCode() == "ConditionalCheckFailedException" {
			return ErrAlreadyExists
		}
		return fmt.Errorf("put item: %w", err)
	}
	return nil
}

// Get fetches a sneaker by id. Returns (nil, nil) if not found.
func (s *Store) Get(ctx context.Context, sneakerID string) (*Sneaker, error) {
	out, err := s.client.GetItem(ctx, &dyn.GetItemInput{
		TableName: &s.tableName,
		Key: map[string]types.AttributeValue{
			"sneaker_id": &types.AttributeValueMemberS{Value: sneakerID},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, nil
	}
	var sn Sneaker
	if err := attributevalue.UnmarshalMap(out.Item, &sn); err != nil {
		return nil, fmt.Errorf("unmarshal sneaker: %w", err)
	}
	return &sn, nil
}

// BatchGet fetches many sneakers by id in chunks of the BatchGetItem limit and
// returns them keyed by id. Ids that no longer resolve are simply absent from
// the result; callers treat those as dangling references.
func (s *Store) BatchGet(ctx context.Context, ids []string) (map[string]Sneaker, error) {
	result := make(map[string]Sneaker, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	// de-duplicate; carts may reference the same sneaker in several sizes
	seen := make(map[string]struct{}, len(ids))
	unique := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	for start := 0; start < len(unique); start += batchGetLimit {
		end := start + batchGetLimit
		if end > len(unique) {
			end = len(unique)
		}

		keys := make([]map[string]types.AttributeValue, 0, end-start)
		for _, id := range unique[start:end] {
			keys = append(keys, map[string]types.AttributeValue{
				"sneaker_id": &types.AttributeValueMemberS{Value: id},
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
				var sn Sneaker
				if err := attributevalue.UnmarshalMap(item, &sn); err != nil {
					return nil, fmt.Errorf("unmarshal sneaker: %w", err)
				}
				result[sn.SneakerID] = sn
			}
			// DynamoDB may return a partial batch; retry the remainder
			request = out.UnprocessedKeys
		}
	}

	return result, nil
}

// List scans the whole sneakers table. The catalog is small enough that a
// paginated scan is the pragmatic listing strategy; results feed the cache.
func (s *Store) List(ctx context.Context) ([]Sneaker, error) {
	var result []Sneaker
	var startKey map[string]types.AttributeValue

	for {
		out, err := s.client.Scan(ctx, &dyn.ScanInput{
			TableName:         &s.tableName,
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		for _, item := range out.Items {
			var sn Sneaker
			if err := attributevalue.UnmarshalMap(item, &sn); err != nil {
				return nil, fmt.Errorf("unmarshal sneaker: %w", err)
			}
			result = append(result, sn)
		}
		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		startKey = out.LastEvaluatedKey
	}

	return result, nil
}

// Update replaces an existing sneaker document, preserving its CreatedAt.
// Returns (false, nil) when the sneaker does not exist.
func (s *Store) Update(ctx context.Context, sneaker Sneaker) (bool, error) {
	existing, err := s.Get(ctx, sneaker.SneakerID)
	if err != nil {
		return false, err
	}
	if existing == nil {
		return false, nil
	}

	sneaker.CreatedAt = existing.CreatedAt
	sneaker.CreatedBy = existing.CreatedBy
	sneaker.UpdatedAt = s.nowFunc()

	item, err := attributevalue.MarshalMap(sneaker)
	if err != nil {
		return false, fmt.Errorf("marshal sneaker: %w", err)
	}
	if _, err := s.client.PutItem(ctx, &dyn.PutItemInput{
		TableName: &s.tableName,
		Item:      item,
	}); err != nil {
		return false, fmt.Errorf("put item: %w", err)
	}
	return true, nil
}

// Delete removes a sneaker. Carts and orders referencing it are untouched;
// dangling references are cleaned up lazily on cart reads.
// Returns (false, nil) when the sneaker does not exist.
func (s *Store) Delete(ctx context.Context, sneakerID string) (bool, error) {
	existing, err := s.Get(ctx, sneakerID)
	if err != nil {
		return false, err
	}
	if existing == nil {
		return false, nil
	}

	if _, err := s.client.DeleteItem(ctx, &dyn.DeleteItemInput{
		TableName: &s.tableName,
		Key: map[string]types.AttributeValue{
			"sneaker_id": &types.AttributeValueMemberS{Value: sneakerID},
		},
	}); err != nil {
		return false, fmt.Errorf("delete item: %w", err)
	}
	return true, nil
}

func awsString(s string) *string { return &s }

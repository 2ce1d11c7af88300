package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// mockDynamo stores items per table keyed by sneaker_id. It supports the
// subset of calls the catalog store issues.
type mockDynamo struct {
	mu            sync.Mutex
	tables        map[string]map[string]map[string]types.AttributeValue
	batchRequests int
}

func newMockDynamo() *mockDynamo {
	return &mockDynamo{tables: map[string]map[string]map[string]types.AttributeValue{}}
}

func (m *mockDynamo) ensureTable(tbl string) {
	if _, ok := m.tables[tbl]; !ok {
		m.tables[tbl] = map[string]map[string]types.AttributeValue{}
	}
}

func pkOf(item map[string]types.AttributeValue) (string, error) {
	if v, ok := item["sneaker_id"]; ok {
		return v.(*types.AttributeValueMemberS).Value, nil
	}
	return "", errors.New("no primary key in item")
}

func (m *mockDynamo) PutItem(ctx context.Context, params *dyn.PutItemInput, optFns ...func(*dyn.Options)) (*dyn.PutItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	table := *params.TableName
	m.ensureTable(table)
	pk, err := pkOf(params.Item)
	if err != nil {
		return nil, err
	}
	if params.ConditionExpression != nil && *params.ConditionExpression == "attribute_not_exists(sneaker_id)" {
		if _, exists := m.tables[table][pk]; exists {
			return nil, &types.ConditionalCheckFailedException{}
		}
	}
	m.tables[table][pk] = params.Item
	return &dyn.PutItemOutput{}, nil
}

func (m *mockDynamo) GetItem(ctx context.Context, params *dyn.GetItemInput, optFns ...func(*dyn.Options)) (*dyn.GetItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	table := *params.TableName
	m.ensureTable(table)
	pk, err := pkOf(params.Key)
	if err != nil {
		return nil, err
	}
	item, ok := m.tables[table][pk]
	if !ok {
		return &dyn.GetItemOutput{}, nil
	}
	return &dyn.GetItemOutput{Item: item}, nil
}

func (m *mockDynamo) DeleteItem(ctx context.Context, params *dyn.DeleteItemInput, optFns ...func(*dyn.Options)) (*dyn.DeleteItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	table := *params.TableName
	m.ensureTable(table)
	pk, err := pkOf(params.Key)
	if err != nil {
		return nil, err
	}
	delete(m.tables[table], pk)
	return &dyn.DeleteItemOutput{}, nil
}

func (m *mockDynamo) Scan(ctx context.Context, params *dyn.ScanInput, optFns ...func(*dyn.Options)) (*dyn.ScanOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	table := *params.TableName
	m.ensureTable(table)
	out := &dyn.ScanOutput{}
	for _, item := range m.tables[table] {
		out.Items = append(out.Items, item)
	}
	return out, nil
}

func (m *mockDynamo) BatchGetItem(ctx context.Context, params *dyn.BatchGetItemInput, optFns ...func(*dyn.Options)) (*dyn.BatchGetItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.batchRequests++
	out := &dyn.BatchGetItemOutput{Responses: map[string][]map[string]types.AttributeValue{}}
	for table, kaa := range params.RequestItems {
		m.ensureTable(table)
		if len(kaa.Keys) > 100 {
			return nil, fmt.Errorf("too many keys in batch: %d", len(kaa.Keys))
		}
		for _, key := range kaa.Keys {
			pk, err := pkOf(key)
			if err != nil {
				return nil, err
			}
			if item, ok := m.tables[table][pk]; ok {
				out.Responses[table] = append(out.Responses[table], item)
			}
		}
	}
	return out, nil
}

func (m *mockDynamo) UpdateItem(ctx context.Context, params *dyn.UpdateItemInput, optFns ...func(*dyn.Options)) (*dyn.UpdateItemOutput, error) {
	return &dyn.UpdateItemOutput{}, nil
}

func (m *mockDynamo) Query(ctx context.Context, params *dyn.QueryInput, optFns ...func(*dyn.Options)) (*dyn.QueryOutput, error) {
	return &dyn.QueryOutput{}, nil
}

func (m *mockDynamo) TransactWriteItems(ctx context.Context, params *dyn.TransactWriteItemsInput, optFns ...func(*dyn.Options)) (*dyn.TransactWriteItemsOutput, error) {
	return &dyn.TransactWriteItemsOutput{}, nil
}

func TestCreate_ThenGet(t *testing.T) {
	mock := newMockDynamo()
	store := NewStore(mock, "sneakers")

	sn := Sneaker{
		SneakerID:  "sn-1",
		Name:       "Air Zoom",
		Brand:      "Nike",
		PriceCents: 12000,
		Sizes:      []float64{9, 10},
		Images:     []string{"https://img/1.png"},
		SKU:        "NK-AZ-001",
	}
	if err := store.Create(context.Background(), sn); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := store.Get(context.Background(), "sn-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || got.SKU != "NK-AZ-001" {
		t.Fatalf("unexpected sneaker: %+v", got)
	}
	if got.CreatedAt.IsZero() || got.UpdatedAt.IsZero() {
		t.Fatal("timestamps not set on create")
	}
}

func TestCreate_DuplicateID(t *testing.T) {
	mock := newMockDynamo()
	store := NewStore(mock, "sneakers")

	sn := Sneaker{SneakerID: "sn-1", Name: "A", Brand: "B", PriceCents: 1, SKU: "X"}
	if err := store.Create(context.Background(), sn); err != nil {
		t.Fatalf("first create: %v", err)
	}
	err := store.Create(context.Background(), sn)
	if !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestGet_NotFound(t *testing.T) {
	mock := newMockDynamo()
	store := NewStore(mock, "sneakers")

	got, err := store.Get(context.Background(), "missing")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for missing sneaker, got %+v", got)
	}
}

func TestBatchGet_DedupesAndChunks(t *testing.T) {
	mock := newMockDynamo()
	store := NewStore(mock, "sneakers")

	var ids []string
	for i := 0; i < 150; i++ {
		id := fmt.Sprintf("sn-%03d", i)
		sn := Sneaker{SneakerID: id, Name: "N", Brand: "B", PriceCents: 100, SKU: id}
		if err := store.Create(context.Background(), sn); err != nil {
			t.Fatalf("create %s: %v", id, err)
		}
		// duplicate every id to exercise de-duplication
		ids = append(ids, id, id)
	}
	ids = append(ids, "sn-missing")

	got, err := store.BatchGet(context.Background(), ids)
	if err != nil {
		t.Fatalf("batch get: %v", err)
	}
	if len(got) != 150 {
		t.Fatalf("expected 150 sneakers, got %d", len(got))
	}
	if _, ok := got["sn-missing"]; ok {
		t.Fatal("missing id should be absent from result")
	}
	if mock.batchRequests != 2 {
		t.Fatalf("expected 2 chunked requests for 151 unique ids, got %d", mock.batchRequests)
	}
}

func TestDelete_Existing_And_Missing(t *testing.T) {
	mock := newMockDynamo()
	store := NewStore(mock, "sneakers")

	sn := Sneaker{SneakerID: "sn-1", Name: "A", Brand: "B", PriceCents: 1, SKU: "X"}
	if err := store.Create(context.Background(), sn); err != nil {
		t.Fatalf("create: %v", err)
	}

	found, err := store.Delete(context.Background(), "sn-1")
	if err != nil || !found {
		t.Fatalf("expected delete to succeed, found=%v err=%v", found, err)
	}
	found, err = store.Delete(context.Background(), "sn-1")
	if err != nil {
		t.Fatalf("second delete: %v", err)
	}
	if found {
		t.Fatal("expected found=false for missing sneaker")
	}
}

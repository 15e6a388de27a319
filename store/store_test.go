package store_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/jacentio/todos/store"
	"github.com/jacentio/todos/store/storetest"
	"github.com/jacentio/todos/todo"
)

const testTable = "todos"

func newTable(t *testing.T) (*store.Table, *storetest.Client) {
	t.Helper()
	client := storetest.NewClient()
	return store.New(client, store.Config{TableName: testTable}), client
}

func strPtr(s string) *string { return &s }

func sampleItem(id string) todo.Item {
	return todo.Item{
		ID:        id,
		Title:     "Title " + id,
		Status:    todo.StatusPending,
		CreatedAt: "2024-01-01T00:00:00Z",
		UpdatedAt: "2024-01-01T00:00:00Z",
	}
}

// --- Unit Tests ---

func TestDefaultConfig(t *testing.T) {
	cfg := store.DefaultConfig()

	if cfg.StatusIndex != "status-index" {
		t.Errorf("expected StatusIndex 'status-index', got %q", cfg.StatusIndex)
	}
	if cfg.ScanLimit != 100 {
		t.Errorf("expected ScanLimit 100, got %d", cfg.ScanLimit)
	}
	if cfg.TableName != "" {
		t.Errorf("expected empty TableName, got %q", cfg.TableName)
	}
}

func TestOpen_MissingTableName(t *testing.T) {
	_, err := store.Open(context.Background(), store.Config{})
	if !errors.Is(err, store.ErrMissingTableName) {
		t.Errorf("expected ErrMissingTableName, got %v", err)
	}
}

func TestOpen_LocalEndpoint(t *testing.T) {
	tbl, err := store.Open(context.Background(), store.Config{
		TableName: testTable,
		Endpoint:  "http://localhost:8000",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tbl.Name() != testTable {
		t.Errorf("expected table %q, got %q", testTable, tbl.Name())
	}
	if tbl.Config().Region != "ca-central-1" {
		t.Errorf("expected local region, got %q", tbl.Config().Region)
	}
}

// --- Put / Get Tests ---

func TestPutGet_RoundTrip(t *testing.T) {
	tbl, _ := newTable(t)
	ctx := context.Background()

	item := sampleItem("a")
	item.Description = strPtr("d")
	if err := tbl.Put(ctx, item); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := tbl.Get(ctx, "a")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != item.Title || got.Status != item.Status || got.CreatedAt != item.CreatedAt {
		t.Errorf("expected %+v, got %+v", item, got)
	}
	if got.Description == nil || *got.Description != "d" {
		t.Errorf("expected description 'd', got %v", got.Description)
	}
}

func TestPut_NilDescriptionStoredAsNull(t *testing.T) {
	tbl, client := newTable(t)
	if err := tbl.Put(context.Background(), sampleItem("a")); err != nil {
		t.Fatalf("put: %v", err)
	}

	raw := client.Raw(testTable, "a")
	if _, ok := raw["description"].(*types.AttributeValueMemberNULL); !ok {
		t.Errorf("expected NULL description, got %T", raw["description"])
	}
}

func TestPut_OverwritesSilently(t *testing.T) {
	tbl, client := newTable(t)
	ctx := context.Background()

	_ = tbl.Put(ctx, sampleItem("a"))
	second := sampleItem("a")
	second.Title = "replaced"
	if err := tbl.Put(ctx, second); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, _ := tbl.Get(ctx, "a")
	if got.Title != "replaced" {
		t.Errorf("expected overwritten title, got %q", got.Title)
	}
	if client.Len(testTable) != 1 {
		t.Errorf("expected 1 item, got %d", client.Len(testTable))
	}
}

func TestGet_NotFound(t *testing.T) {
	tbl, _ := newTable(t)
	_, err := tbl.Get(context.Background(), "does-not-exist")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestGet_ClientErrorWrapped(t *testing.T) {
	tbl, client := newTable(t)
	client.Err = errors.New("throttled")

	_, err := tbl.Get(context.Background(), "a")
	if err == nil || errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected client error, got %v", err)
	}
	if !errors.Is(err, client.Err) {
		t.Errorf("expected wrapped client error, got %v", err)
	}
}

// --- Scan Tests ---

func TestScan_Empty(t *testing.T) {
	tbl, _ := newTable(t)
	items, err := tbl.Scan(context.Background(), 0)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if items == nil || len(items) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", items)
	}
}

func TestScan_BoundedByDefaultLimit(t *testing.T) {
	tbl, _ := newTable(t)
	ctx := context.Background()
	for i := 0; i < 150; i++ {
		if err := tbl.Put(ctx, sampleItem(fmt.Sprintf("id-%03d", i))); err != nil {
			t.Fatalf("put: %v", err)
		}
	}

	items, err := tbl.Scan(ctx, 0)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(items) != 100 {
		t.Errorf("expected 100 items, got %d", len(items))
	}
}

func TestScan_ExplicitLimit(t *testing.T) {
	tbl, _ := newTable(t)
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		_ = tbl.Put(ctx, sampleItem(fmt.Sprintf("id-%d", i)))
	}

	items, _ := tbl.Scan(ctx, 2)
	if len(items) != 2 {
		t.Errorf("expected 2 items, got %d", len(items))
	}
}

// --- QueryByStatus Tests ---

func TestQueryByStatus_FiltersOnIndex(t *testing.T) {
	tbl, client := newTable(t)
	ctx := context.Background()

	_ = tbl.Put(ctx, sampleItem("a"))
	done := sampleItem("b")
	done.Status = todo.StatusDone
	_ = tbl.Put(ctx, done)

	items, err := tbl.QueryByStatus(ctx, todo.StatusDone, 0)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(items) != 1 || items[0].ID != "b" {
		t.Errorf("expected only item b, got %+v", items)
	}
	if client.Calls("Query") != 1 {
		t.Errorf("expected 1 Query call, got %d", client.Calls("Query"))
	}
}

// --- Update Tests ---

func TestUpdate_PreservesUntouchedFields(t *testing.T) {
	tbl, _ := newTable(t)
	ctx := context.Background()

	item := sampleItem("a")
	item.Description = strPtr("d")
	_ = tbl.Put(ctx, item)

	attrs, err := tbl.Update(ctx, "a", todo.Update{Status: strPtr("done")}, "2024-01-02T00:00:00Z")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if attrs["status"] != "done" {
		t.Errorf("expected status 'done', got %v", attrs["status"])
	}
	if attrs["title"] != item.Title || attrs["description"] != "d" {
		t.Errorf("expected untouched fields preserved, got %v", attrs)
	}
	if attrs["created_at"] != "2024-01-01T00:00:00Z" || attrs["updated_at"] != "2024-01-02T00:00:00Z" {
		t.Errorf("unexpected timestamps %v / %v", attrs["created_at"], attrs["updated_at"])
	}
}

func TestUpdate_MissingIDUpserts(t *testing.T) {
	tbl, client := newTable(t)

	attrs, err := tbl.Update(context.Background(), "ghost", todo.Update{}, "2024-01-02T00:00:00Z")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if len(attrs) != 2 || attrs["id"] != "ghost" || attrs["updated_at"] != "2024-01-02T00:00:00Z" {
		t.Errorf("expected only id and updated_at, got %v", attrs)
	}
	if client.Len(testTable) != 1 {
		t.Errorf("expected the upserted row to exist, got %d items", client.Len(testTable))
	}
}

// --- Delete Tests ---

func TestDelete_Idempotent(t *testing.T) {
	tbl, client := newTable(t)
	ctx := context.Background()
	_ = tbl.Put(ctx, sampleItem("a"))

	for i := 0; i < 2; i++ {
		if err := tbl.Delete(ctx, "a"); err != nil {
			t.Fatalf("delete %d: %v", i, err)
		}
	}
	if client.Len(testTable) != 0 {
		t.Errorf("expected empty table, got %d items", client.Len(testTable))
	}
}

// --- EnsureTable Tests ---

func TestEnsureTable_CreatesOnce(t *testing.T) {
	client := storetest.NewClient()
	tbl := store.New(client, store.Config{TableName: "fresh"})
	ctx := context.Background()

	created, err := tbl.EnsureTable(ctx)
	if err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if !created {
		t.Error("expected table to be created")
	}

	created, err = tbl.EnsureTable(ctx)
	if err != nil {
		t.Fatalf("second ensure: %v", err)
	}
	if created {
		t.Error("expected existing table to be left alone")
	}
	if client.Calls("CreateTable") != 1 {
		t.Errorf("expected 1 CreateTable call, got %d", client.Calls("CreateTable"))
	}
}

func TestCreateTableInput_Schema(t *testing.T) {
	tbl, _ := newTable(t)
	in := tbl.CreateTableInput()

	if in.BillingMode != types.BillingModePayPerRequest {
		t.Errorf("expected on-demand billing, got %v", in.BillingMode)
	}
	if len(in.KeySchema) != 1 || *in.KeySchema[0].AttributeName != "id" {
		t.Errorf("expected hash key id, got %+v", in.KeySchema)
	}
	if len(in.GlobalSecondaryIndexes) != 1 {
		t.Fatalf("expected 1 GSI, got %d", len(in.GlobalSecondaryIndexes))
	}
	gsi := in.GlobalSecondaryIndexes[0]
	if *gsi.IndexName != "status-index" || *gsi.KeySchema[0].AttributeName != "status" {
		t.Errorf("unexpected GSI %+v", gsi)
	}
	if gsi.Projection.ProjectionType != types.ProjectionTypeAll {
		t.Errorf("expected ALL projection, got %v", gsi.Projection.ProjectionType)
	}
}

// --- Seed Tests ---

func TestSeed_PutsSampleItems(t *testing.T) {
	tbl, client := newTable(t)
	n := 0
	newID := func() string {
		n++
		return fmt.Sprintf("seed-%d", n)
	}

	items, err := tbl.Seed(context.Background(), 3, newID)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if len(items) != 3 || client.Len(testTable) != 3 {
		t.Fatalf("expected 3 items, got %d (stored %d)", len(items), client.Len(testTable))
	}

	got, err := tbl.Get(context.Background(), "seed-2")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != "Sample Todo 2" {
		t.Errorf("expected title Sample Todo 2, got %q", got.Title)
	}
	if got.Description == nil || *got.Description != "From seed script" {
		t.Errorf("unexpected description %v", got.Description)
	}
	if got.Status != todo.StatusPending || got.CreatedAt != "2024-01-01T00:00:00Z" || got.UpdatedAt != got.CreatedAt {
		t.Errorf("unexpected seeded item %+v", got)
	}
}

func TestSeed_StopsOnError(t *testing.T) {
	tbl, client := newTable(t)
	client.Err = errors.New("throttled")

	_, err := tbl.Seed(context.Background(), 2, func() string { return "x" })
	if err == nil {
		t.Fatal("expected error")
	}
	if client.Calls("PutItem") != 1 {
		t.Errorf("expected 1 PutItem call, got %d", client.Calls("PutItem"))
	}
}

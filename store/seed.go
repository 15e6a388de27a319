package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jacentio/todos/todo"
)

// seedTime is the fixed creation time stamped on seeded items.
var seedTime = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// SampleItems returns count pending items titled "Sample Todo 1" onwards.
func SampleItems(count int, newID func() string) []todo.Item {
	desc := "From seed script"
	items := make([]todo.Item, 0, count)
	for i := 1; i <= count; i++ {
		items = append(items, todo.NewItem(newID(), todo.Create{
			Title:       fmt.Sprintf("Sample Todo %d", i),
			Description: &desc,
		}, seedTime))
	}
	return items
}

// Seed puts count sample items and returns them.
func (t *Table) Seed(ctx context.Context, count int, newID func() string) ([]todo.Item, error) {
	items := SampleItems(count, newID)
	for _, item := range items {
		if err := t.Put(ctx, item); err != nil {
			return nil, fmt.Errorf("seeding %s: %w", item.ID, err)
		}
	}
	return items, nil
}

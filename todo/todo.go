package todo

import (
	"time"
)

// Conventional status values. Status is free-form; these are the values the
// service itself assigns or documents.
const (
	StatusPending = "pending"
	StatusDone    = "done"
)

// timestampLayout is ISO 8601 UTC with second precision and a literal Z.
const timestampLayout = "2006-01-02T15:04:05Z"

// Item is a persisted todo record.
type Item struct {
	// ID is the primary key. Assigned once at creation, never accepted from clients.
	ID string `json:"id" dynamodbav:"id"`

	// Title is never empty for items written through Create.
	Title string `json:"title" dynamodbav:"title"`

	// Description is optional; nil is stored as NULL and rendered as JSON null.
	Description *string `json:"description" dynamodbav:"description"`

	// Status is the secondary index hash key.
	Status string `json:"status" dynamodbav:"status"`

	// CreatedAt is set once at creation.
	CreatedAt string `json:"created_at" dynamodbav:"created_at"`

	// UpdatedAt is refreshed on every successful mutation.
	UpdatedAt string `json:"updated_at" dynamodbav:"updated_at"`
}

// Create is the create request body.
type Create struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

// Update is the partial update request body. Nil fields are left unchanged.
type Update struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

// Empty reports whether the update carries no field assignments.
func (u Update) Empty() bool {
	return u.Title == nil && u.Description == nil && u.Status == nil
}

// NewItem builds the item persisted for a create request. created_at and
// updated_at are both set to now.
func NewItem(id string, in Create, now time.Time) Item {
	status := StatusPending
	if in.Status != nil {
		status = *in.Status
	}
	ts := Timestamp(now)
	return Item{
		ID:          id,
		Title:       in.Title,
		Description: in.Description,
		Status:      status,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}
}

// Timestamp formats t as an ISO 8601 UTC timestamp, e.g. 2024-01-01T00:00:00Z.
func Timestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

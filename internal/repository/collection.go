package repository

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/spec-kit/ticket-admin/internal/store"
)

// Collection is a typed view over one store collection. All five dashboard
// resource types share these semantics, so the repository is generic rather
// than written out once per type.
type Collection[T any] struct {
	store store.Store
	name  string
}

// NewCollection binds a document type to a named store collection.
func NewCollection[T any](s store.Store, name string) *Collection[T] {
	return &Collection[T]{store: s, name: name}
}

// Name returns the underlying collection name.
func (c *Collection[T]) Name() string { return c.name }

// List returns every document in the collection.
func (c *Collection[T]) List(ctx context.Context) ([]T, error) {
	docs, err := c.store.List(ctx, c.name)
	if err != nil {
		return nil, err
	}
	items := make([]T, 0, len(docs))
	for _, doc := range docs {
		var item T
		if err := json.Unmarshal(doc, &item); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// Get returns the document with the given id.
func (c *Collection[T]) Get(ctx context.Context, id string) (T, error) {
	var item T
	doc, err := c.store.Get(ctx, c.name, id)
	if err != nil {
		return item, err
	}
	if err := json.Unmarshal(doc, &item); err != nil {
		return item, err
	}
	return item, nil
}

// Insert stores a new document, generating an id when the payload carries
// none, and returns the stored form.
func (c *Collection[T]) Insert(ctx context.Context, item T) (T, string, error) {
	var zero T
	raw, err := json.Marshal(item)
	if err != nil {
		return zero, "", err
	}
	id, err := store.DocumentID(raw)
	if err != nil {
		return zero, "", err
	}
	if id == "" {
		id = uuid.NewString()
	}
	raw, err = store.WithDocumentID(raw, id)
	if err != nil {
		return zero, "", err
	}
	if err := c.store.Insert(ctx, c.name, id, raw); err != nil {
		return zero, "", err
	}
	var stored T
	if err := json.Unmarshal(raw, &stored); err != nil {
		return zero, "", err
	}
	return stored, id, nil
}

// Replace swaps the document with the given id, forcing the path id over
// whatever the payload carries.
func (c *Collection[T]) Replace(ctx context.Context, id string, item T) (T, error) {
	var zero T
	raw, err := json.Marshal(item)
	if err != nil {
		return zero, err
	}
	raw, err = store.WithDocumentID(raw, id)
	if err != nil {
		return zero, err
	}
	if err := c.store.Replace(ctx, c.name, id, raw); err != nil {
		return zero, err
	}
	var stored T
	if err := json.Unmarshal(raw, &stored); err != nil {
		return zero, err
	}
	return stored, nil
}

// Delete removes the document with the given id.
func (c *Collection[T]) Delete(ctx context.Context, id string) error {
	return c.store.Delete(ctx, c.name, id)
}

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Sentinel errors surfaced by store drivers.
var (
	// ErrNotFound indicates the requested document does not exist.
	ErrNotFound = errors.New("document not found")
	// ErrDuplicateID indicates an insert collided with an existing id.
	ErrDuplicateID = errors.New("duplicate document id")
	// ErrStoreIO wraps failures reading or writing the backing storage.
	ErrStoreIO = errors.New("store io failure")
)

// Store is a durable keyed collection of JSON documents. Uniqueness beyond
// the document id (e.g. one user per email) is enforced at the application
// layer, not here. Drivers guarantee read-your-writes within a single
// process.
type Store interface {
	List(ctx context.Context, collection string) ([]json.RawMessage, error)
	Get(ctx context.Context, collection, id string) (json.RawMessage, error)
	Insert(ctx context.Context, collection, id string, doc json.RawMessage) error
	Replace(ctx context.Context, collection, id string, doc json.RawMessage) error
	Delete(ctx context.Context, collection, id string) error
	ReplaceAll(ctx context.Context, collection string, docs []json.RawMessage) error
	Close() error
}

func ioErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStoreIO, err)
}

// DocumentID extracts the "id" field of a raw document. Numeric ids found in
// hand-edited data files are normalized to their decimal string form.
func DocumentID(doc json.RawMessage) (string, error) {
	var probe struct {
		ID json.RawMessage `json:"id"`
	}
	if err := json.Unmarshal(doc, &probe); err != nil {
		return "", fmt.Errorf("decode document: %w", err)
	}
	if len(probe.ID) == 0 {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(probe.ID, &s); err == nil {
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(probe.ID, &n); err == nil {
		return n.String(), nil
	}
	return "", errors.New("document id is neither string nor number")
}

// WithDocumentID returns a copy of doc whose "id" field is set to id.
func WithDocumentID(doc json.RawMessage, id string) (json.RawMessage, error) {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(doc, &m); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	idRaw, err := json.Marshal(id)
	if err != nil {
		return nil, err
	}
	m["id"] = idRaw
	return json.Marshal(m)
}

package store

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
)

// FileStore keeps every collection in a single JSON file, the same shape the
// dashboard's db.json always had: an object keyed by collection name, each
// value an array of documents. Every mutation rewrites the whole file.
//
// A single mutex serializes all access, so two concurrent mutations can no
// longer clobber each other the way the original single-file server allowed;
// the write itself goes through a temp file and rename so a crash mid-write
// never truncates the data file.
type FileStore struct {
	mu     sync.Mutex
	path   string
	logger *zap.Logger
}

// NewFileStore opens (or creates) the data file at path.
func NewFileStore(path string, logger *zap.Logger) (*FileStore, error) {
	fs := &FileStore{path: path, logger: logger}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := fs.write(map[string][]json.RawMessage{}); err != nil {
			return nil, err
		}
		logger.Info("created data file", zap.String("path", path))
	} else if err != nil {
		return nil, ioErr("stat data file", err)
	}
	return fs, nil
}

func (f *FileStore) read() (map[string][]json.RawMessage, error) {
	raw, err := os.ReadFile(f.path)
	if err != nil {
		return nil, ioErr("read data file", err)
	}
	data := map[string][]json.RawMessage{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &data); err != nil {
			return nil, ioErr("decode data file", err)
		}
	}
	return data, nil
}

func (f *FileStore) write(data map[string][]json.RawMessage) error {
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return ioErr("encode data file", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".db-*.json")
	if err != nil {
		return ioErr("create temp file", err)
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return ioErr("write temp file", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return ioErr("close temp file", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		os.Remove(tmp.Name())
		return ioErr("replace data file", err)
	}
	return nil
}

// List returns all documents of a collection. Unknown collections are empty,
// not errors.
func (f *FileStore) List(_ context.Context, collection string) ([]json.RawMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := f.read()
	if err != nil {
		return nil, err
	}
	docs := make([]json.RawMessage, len(data[collection]))
	copy(docs, data[collection])
	return docs, nil
}

// Get returns the document with the given id.
func (f *FileStore) Get(_ context.Context, collection, id string) (json.RawMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := f.read()
	if err != nil {
		return nil, err
	}
	if _, doc := findDoc(data[collection], id); doc != nil {
		return doc, nil
	}
	return nil, ErrNotFound
}

// Insert appends a document, failing when the id is already present.
func (f *FileStore) Insert(_ context.Context, collection, id string, doc json.RawMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := f.read()
	if err != nil {
		return err
	}
	if idx, _ := findDoc(data[collection], id); idx >= 0 {
		return ErrDuplicateID
	}
	data[collection] = append(data[collection], doc)
	return f.write(data)
}

// Replace swaps the stored document with the given id.
func (f *FileStore) Replace(_ context.Context, collection, id string, doc json.RawMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := f.read()
	if err != nil {
		return err
	}
	idx, _ := findDoc(data[collection], id)
	if idx < 0 {
		return ErrNotFound
	}
	data[collection][idx] = doc
	return f.write(data)
}

// Delete removes the document with the given id.
func (f *FileStore) Delete(_ context.Context, collection, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := f.read()
	if err != nil {
		return err
	}
	idx, _ := findDoc(data[collection], id)
	if idx < 0 {
		return ErrNotFound
	}
	data[collection] = append(data[collection][:idx], data[collection][idx+1:]...)
	return f.write(data)
}

// ReplaceAll overwrites an entire collection in one write.
func (f *FileStore) ReplaceAll(_ context.Context, collection string, docs []json.RawMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := f.read()
	if err != nil {
		return err
	}
	data[collection] = append([]json.RawMessage{}, docs...)
	return f.write(data)
}

// Close is a no-op; the file is reopened per operation.
func (f *FileStore) Close() error { return nil }

func findDoc(docs []json.RawMessage, id string) (int, json.RawMessage) {
	for i, doc := range docs {
		docID, err := DocumentID(doc)
		if err != nil {
			continue
		}
		if docID == id {
			return i, doc
		}
	}
	return -1, nil
}

var _ Store = (*FileStore)(nil)

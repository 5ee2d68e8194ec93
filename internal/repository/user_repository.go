package repository

import (
	"context"
	"encoding/json"

	"github.com/spec-kit/ticket-admin/internal/domain"
	"github.com/spec-kit/ticket-admin/internal/store"
)

// UsersCollection is the store collection holding user records.
const UsersCollection = "users"

// UserRepository defines persistence access for dashboard operators.
// Email uniqueness is the caller's job; the store only keys by id.
type UserRepository interface {
	Insert(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	ReplaceAll(ctx context.Context, users []domain.User) error
}

type userRepository struct {
	store store.Store
}

// NewUserRepository returns a document-store-backed implementation.
func NewUserRepository(s store.Store) UserRepository {
	return &userRepository{store: s}
}

func (r *userRepository) Insert(ctx context.Context, user *domain.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return r.store.Insert(ctx, UsersCollection, user.ID, raw)
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return r.store.Replace(ctx, UsersCollection, user.ID, raw)
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	raw, err := r.store.Get(ctx, UsersCollection, id)
	if err != nil {
		return nil, err
	}
	var user domain.User
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	docs, err := r.store.List(ctx, UsersCollection)
	if err != nil {
		return nil, err
	}
	for _, doc := range docs {
		var user domain.User
		if err := json.Unmarshal(doc, &user); err != nil {
			continue
		}
		if user.Email == email {
			return &user, nil
		}
	}
	return nil, store.ErrNotFound
}

func (r *userRepository) ReplaceAll(ctx context.Context, users []domain.User) error {
	docs := make([]json.RawMessage, 0, len(users))
	for i := range users {
		raw, err := json.Marshal(&users[i])
		if err != nil {
			return err
		}
		docs = append(docs, raw)
	}
	return r.store.ReplaceAll(ctx, UsersCollection, docs)
}

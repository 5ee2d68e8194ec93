package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/ticket-admin/internal/domain"
	"github.com/spec-kit/ticket-admin/internal/events"
	"github.com/spec-kit/ticket-admin/internal/repository"
	"github.com/spec-kit/ticket-admin/internal/store"
)

func newEventsService(t *testing.T, dispatcher events.Dispatcher) *ResourceService[domain.Event] {
	t.Helper()
	fs, err := store.NewFileStore(filepath.Join(t.TempDir(), "db.json"), zap.NewNop())
	require.NoError(t, err)
	coll := repository.NewCollection[domain.Event](fs, "events")
	return NewResourceService(coll, dispatcher, nil, 0)
}

func TestResourceServiceLifecycle(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := newEventsService(t, nil)

	created, err := svc.Create(ctx, domain.Event{
		Name:         "Rock Night",
		Venue:        "Arena Central",
		Status:       domain.EventStatusUpcoming,
		TotalTickets: 1200,
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	t.Run("get returns the stored document", func(t *testing.T) {
		got, err := svc.Get(ctx, created.ID)
		require.NoError(t, err)
		require.Equal(t, "Rock Night", got.Name)
	})

	t.Run("list sees the document", func(t *testing.T) {
		items, err := svc.List(ctx)
		require.NoError(t, err)
		require.Len(t, items, 1)
	})

	t.Run("replace updates in place", func(t *testing.T) {
		updated, err := svc.Replace(ctx, created.ID, domain.Event{
			Name:   "Rock Night",
			Status: domain.EventStatusFinished,
		})
		require.NoError(t, err)
		require.Equal(t, created.ID, updated.ID)
		require.Equal(t, domain.EventStatusFinished, updated.Status)
	})

	t.Run("replace of unknown id fails", func(t *testing.T) {
		_, err := svc.Replace(ctx, "missing", domain.Event{Name: "x"})
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("delete removes", func(t *testing.T) {
		require.NoError(t, svc.Delete(ctx, created.ID))
		_, err := svc.Get(ctx, created.ID)
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestResourceServicePublishesEvents(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	dispatcher := events.NewInMemoryDispatcher()
	var seen []events.EventType
	record := func(_ context.Context, e events.Event) error {
		seen = append(seen, e.Type)
		return nil
	}
	dispatcher.Subscribe(events.EventResourceCreated, record)
	dispatcher.Subscribe(events.EventResourceUpdated, record)
	dispatcher.Subscribe(events.EventResourceDeleted, record)

	svc := newEventsService(t, dispatcher)

	created, err := svc.Create(ctx, domain.Event{Name: "Jazz Eve"})
	require.NoError(t, err)
	_, err = svc.Replace(ctx, created.ID, domain.Event{Name: "Jazz Eve II"})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, created.ID))

	require.Equal(t, []events.EventType{
		events.EventResourceCreated,
		events.EventResourceUpdated,
		events.EventResourceDeleted,
	}, seen)
}

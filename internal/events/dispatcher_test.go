package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDispatcherDeliversInOrder(t *testing.T) {
	t.Parallel()
	d := NewInMemoryDispatcher()

	var got []string
	d.Subscribe(EventUserRegistered, func(_ context.Context, e Event) error {
		got = append(got, "first:"+e.SubjectID)
		return nil
	})
	d.Subscribe(EventUserRegistered, func(_ context.Context, e Event) error {
		got = append(got, "second:"+e.SubjectID)
		return nil
	})

	err := d.Publish(context.Background(), New(EventUserRegistered, "users", "42", nil))
	require.NoError(t, err)
	require.Equal(t, []string{"first:42", "second:42"}, got)
}

func TestDispatcherIgnoresHandlerFailures(t *testing.T) {
	t.Parallel()
	d := NewInMemoryDispatcher()

	delivered := false
	d.Subscribe(EventResourceCreated, func(context.Context, Event) error {
		return errors.New("boom")
	})
	d.Subscribe(EventResourceCreated, func(context.Context, Event) error {
		delivered = true
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), New(EventResourceCreated, "events", "e1", nil)))
	require.True(t, delivered)
}

func TestDispatcherUnknownTypeIsNoop(t *testing.T) {
	t.Parallel()
	d := NewInMemoryDispatcher()
	require.NoError(t, d.Publish(context.Background(), New(EventResourceDeleted, "events", "e1", nil)))
}

func TestNewEventFillsMetadata(t *testing.T) {
	t.Parallel()
	e := New(EventUserRegistered, "users", "42", UserRegisteredPayload{Email: "a@b.com"})
	require.NotEmpty(t, e.ID)
	require.False(t, e.Timestamp.IsZero())
	require.Equal(t, "users", e.Collection)
	require.Equal(t, "42", e.SubjectID)
}

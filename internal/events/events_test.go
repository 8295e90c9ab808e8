package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type recordingSink struct {
	keys []string
	err  error
}

func (r *recordingSink) Publish(_ context.Context, key string, _ any) error {
	r.keys = append(r.keys, key)
	return r.err
}

func TestMulti_FansOutAndJoinsErrors(t *testing.T) {
	ok := &recordingSink{}
	bad := &recordingSink{err: errors.New("broker down")}

	err := Multi{ok, bad}.Publish(context.Background(), SlotCreated, SlotEvent{})

	assert.Error(t, err)
	assert.Equal(t, []string{SlotCreated}, ok.keys)
	assert.Equal(t, []string{SlotCreated}, bad.keys)
}

func TestEmit_LogsFailure(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	sink := &recordingSink{err: errors.New("broker down")}

	Emit(context.Background(), sink, zap.New(core), BookingReserved, BookingEvent{})

	assert.Equal(t, 1, logs.FilterMessage("event publish failed").Len())
}

func TestEmit_NilSink(t *testing.T) {
	assert.NotPanics(t, func() {
		Emit(context.Background(), nil, zap.NewNop(), BookingCancelled, nil)
	})
}

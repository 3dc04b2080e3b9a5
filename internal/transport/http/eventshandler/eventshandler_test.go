package eventshandler_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/devchain-network/gitfeed/internal/cerrors"
	"github.com/devchain-network/gitfeed/internal/slogger/mockslogger"
	"github.com/devchain-network/gitfeed/internal/storage"
	"github.com/devchain-network/gitfeed/internal/storage/mockstorage"
	"github.com/devchain-network/gitfeed/internal/transport/http/eventshandler"
	"github.com/stretchr/testify/assert"
	"github.com/valyala/fasthttp"
)

func TestNew_NoOptions(t *testing.T) {
	handler, err := eventshandler.New()

	assert.ErrorIs(t, err, cerrors.ErrValueRequired)
	assert.Nil(t, handler)
}

func TestNew_NilLogger(t *testing.T) {
	handler, err := eventshandler.New(
		eventshandler.WithLogger(nil),
	)

	assert.ErrorIs(t, err, cerrors.ErrValueRequired)
	assert.Nil(t, handler)
}

func TestNew_NoStorage(t *testing.T) {
	handler, err := eventshandler.New(
		eventshandler.WithLogger(mockslogger.New()),
	)

	assert.ErrorIs(t, err, cerrors.ErrValueRequired)
	assert.Nil(t, handler)
}

func TestNew_InvalidLimit(t *testing.T) {
	handler, err := eventshandler.New(
		eventshandler.WithLogger(mockslogger.New()),
		eventshandler.WithStorage(&mockstorage.Storage{}),
		eventshandler.WithLimit(0),
	)

	assert.ErrorIs(t, err, cerrors.ErrInvalid)
	assert.Nil(t, handler)
}

func TestNew_DefaultLimit(t *testing.T) {
	handler, err := eventshandler.New(
		eventshandler.WithLogger(mockslogger.New()),
		eventshandler.WithStorage(&mockstorage.Storage{}),
	)

	assert.NoError(t, err)
	assert.NotNil(t, handler)
	assert.Equal(t, storage.DefaultLatestEventsLimit, handler.Limit)
}

func TestHandle_NewestFirstCappedAtLimit(t *testing.T) {
	mockStorage := &mockstorage.Storage{}

	for i := range 60 {
		_, err := mockStorage.Store(context.Background(), &storage.Event{
			Identifier: fmt.Sprintf("commit-%d", i),
			Author:     "Ann",
			Action:     storage.ActionPush,
			ToBranch:   "main",
			RequestID:  fmt.Sprintf("commit-%d", i),
		})
		assert.NoError(t, err)
	}

	handler, err := eventshandler.New(
		eventshandler.WithLogger(mockslogger.New()),
		eventshandler.WithStorage(mockStorage),
	)
	assert.NoError(t, err)

	ctx := new(fasthttp.RequestCtx)
	handler.Handle(ctx)

	assert.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())

	var events []storage.Event
	assert.NoError(t, json.Unmarshal(ctx.Response.Body(), &events))
	assert.Len(t, events, 50)
	assert.Equal(t, "commit-59", events[0].Identifier)
	assert.Equal(t, "commit-10", events[49].Identifier)
}

func TestHandle_EmptyStoreReturnsEmptyArray(t *testing.T) {
	handler, err := eventshandler.New(
		eventshandler.WithLogger(mockslogger.New()),
		eventshandler.WithStorage(&mockstorage.Storage{}),
	)
	assert.NoError(t, err)

	ctx := new(fasthttp.RequestCtx)
	handler.Handle(ctx)

	assert.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	assert.Equal(t, "[]", string(ctx.Response.Body()))
}

func TestHandle_StorageError(t *testing.T) {
	mockStorage := &mockstorage.Storage{LatestErr: errors.New("connection lost")}

	handler, err := eventshandler.New(
		eventshandler.WithLogger(mockslogger.New()),
		eventshandler.WithStorage(mockStorage),
	)
	assert.NoError(t, err)

	ctx := new(fasthttp.RequestCtx)
	handler.Handle(ctx)

	assert.Equal(t, fasthttp.StatusInternalServerError, ctx.Response.StatusCode())
}

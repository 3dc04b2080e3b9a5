package healthcheckhandler_test

import (
	"errors"
	"testing"

	"github.com/devchain-network/gitfeed/internal/cerrors"
	"github.com/devchain-network/gitfeed/internal/slogger/mockslogger"
	"github.com/devchain-network/gitfeed/internal/storage/mockstorage"
	"github.com/devchain-network/gitfeed/internal/transport/http/healthcheckhandler"
	"github.com/stretchr/testify/assert"
	"github.com/valyala/fasthttp"
)

func TestNew_NoOptions(t *testing.T) {
	handler, err := healthcheckhandler.New()

	assert.ErrorIs(t, err, cerrors.ErrValueRequired)
	assert.Nil(t, handler)
}

func TestNew_NilLogger(t *testing.T) {
	handler, err := healthcheckhandler.New(
		healthcheckhandler.WithLogger(nil),
	)

	assert.ErrorIs(t, err, cerrors.ErrValueRequired)
	assert.Nil(t, handler)
}

func TestNew_NoStorage(t *testing.T) {
	handler, err := healthcheckhandler.New(
		healthcheckhandler.WithLogger(mockslogger.New()),
	)

	assert.ErrorIs(t, err, cerrors.ErrValueRequired)
	assert.Nil(t, handler)
}

func TestNew_EmptyVersion(t *testing.T) {
	handler, err := healthcheckhandler.New(
		healthcheckhandler.WithLogger(mockslogger.New()),
		healthcheckhandler.WithStorage(&mockstorage.Storage{}),
		healthcheckhandler.WithVersion(""),
	)

	assert.ErrorIs(t, err, cerrors.ErrValueRequired)
	assert.Nil(t, handler)
}

func TestNew_Success(t *testing.T) {
	handler, err := healthcheckhandler.New(
		healthcheckhandler.WithLogger(mockslogger.New()),
		healthcheckhandler.WithStorage(&mockstorage.Storage{}),
		healthcheckhandler.WithVersion("0.1.0"),
	)

	assert.NoError(t, err)
	assert.NotNil(t, handler)
	assert.Equal(t, "0.1.0", handler.Version)
}

func TestHandle_Healthy(t *testing.T) {
	handler, err := healthcheckhandler.New(
		healthcheckhandler.WithLogger(mockslogger.New()),
		healthcheckhandler.WithStorage(&mockstorage.Storage{}),
		healthcheckhandler.WithVersion("0.1.0"),
	)
	assert.NoError(t, err)

	ctx := new(fasthttp.RequestCtx)
	handler.Handle(ctx)

	assert.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	assert.Contains(t, string(ctx.Response.Body()), `"status":"healthy"`)
	assert.Contains(t, string(ctx.Response.Body()), "0.1.0")
}

func TestHandle_Unhealthy(t *testing.T) {
	mockStorage := &mockstorage.Storage{LatestErr: errors.New("connection lost")}

	handler, err := healthcheckhandler.New(
		healthcheckhandler.WithLogger(mockslogger.New()),
		healthcheckhandler.WithStorage(mockStorage),
		healthcheckhandler.WithVersion("0.1.0"),
	)
	assert.NoError(t, err)

	ctx := new(fasthttp.RequestCtx)
	handler.Handle(ctx)

	assert.Equal(t, fasthttp.StatusServiceUnavailable, ctx.Response.StatusCode())
	assert.Contains(t, string(ctx.Response.Body()), `"status":"unhealthy"`)
}

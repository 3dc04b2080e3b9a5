package apiserver_test

import (
	"testing"
	"time"

	"github.com/devchain-network/gitfeed/internal/apiserver"
	"github.com/devchain-network/gitfeed/internal/cerrors"
	"github.com/devchain-network/gitfeed/internal/slogger/mockslogger"
	"github.com/stretchr/testify/assert"
	"github.com/valyala/fasthttp"
)

func TestNew_NoParams(t *testing.T) {
	server, err := apiserver.New()

	assert.ErrorIs(t, err, cerrors.ErrValueRequired)
	assert.Nil(t, server)
}

func TestNew_NilLogger(t *testing.T) {
	server, err := apiserver.New(
		apiserver.WithLogger(nil),
	)

	assert.ErrorIs(t, err, cerrors.ErrValueRequired)
	assert.Nil(t, server)
}

func TestNew_EmptyListenAddr(t *testing.T) {
	server, err := apiserver.New(
		apiserver.WithLogger(mockslogger.New()),
		apiserver.WithListenAddr(""),
	)

	assert.ErrorIs(t, err, cerrors.ErrValueRequired)
	assert.Nil(t, server)
}

func TestNew_InvalidListenAddr(t *testing.T) {
	server, err := apiserver.New(
		apiserver.WithLogger(mockslogger.New()),
		apiserver.WithListenAddr("invalid"),
	)

	assert.ErrorIs(t, err, cerrors.ErrInvalid)
	assert.Nil(t, server)
}

func TestNew_InvalidReadTimeout(t *testing.T) {
	server, err := apiserver.New(
		apiserver.WithLogger(mockslogger.New()),
		apiserver.WithReadTimeout(-1*time.Second),
	)

	assert.ErrorIs(t, err, cerrors.ErrInvalid)
	assert.Nil(t, server)
}

func TestNew_InvalidWriteTimeout(t *testing.T) {
	server, err := apiserver.New(
		apiserver.WithLogger(mockslogger.New()),
		apiserver.WithWriteTimeout(-1*time.Second),
	)

	assert.ErrorIs(t, err, cerrors.ErrInvalid)
	assert.Nil(t, server)
}

func TestNew_InvalidIdleTimeout(t *testing.T) {
	server, err := apiserver.New(
		apiserver.WithLogger(mockslogger.New()),
		apiserver.WithIdleTimeout(-1*time.Second),
	)

	assert.ErrorIs(t, err, cerrors.ErrInvalid)
	assert.Nil(t, server)
}

func TestNew_EmptyHTTPHandlerMethod(t *testing.T) {
	server, err := apiserver.New(
		apiserver.WithLogger(mockslogger.New()),
		apiserver.WithHTTPHandler("", "/", func(_ *fasthttp.RequestCtx) {}),
	)

	assert.ErrorIs(t, err, cerrors.ErrValueRequired)
	assert.Nil(t, server)
}

func TestNew_InvalidHTTPHandlerMethod(t *testing.T) {
	server, err := apiserver.New(
		apiserver.WithLogger(mockslogger.New()),
		apiserver.WithHTTPHandler("FOO", "/", func(_ *fasthttp.RequestCtx) {}),
	)

	assert.ErrorIs(t, err, cerrors.ErrInvalid)
	assert.Nil(t, server)
}

func TestNew_EmptyHTTPHandlerPath(t *testing.T) {
	server, err := apiserver.New(
		apiserver.WithLogger(mockslogger.New()),
		apiserver.WithHTTPHandler(fasthttp.MethodGet, "", func(_ *fasthttp.RequestCtx) {}),
	)

	assert.ErrorIs(t, err, cerrors.ErrValueRequired)
	assert.Nil(t, server)
}

func TestNew_NilHTTPHandler(t *testing.T) {
	server, err := apiserver.New(
		apiserver.WithLogger(mockslogger.New()),
		apiserver.WithHTTPHandler(fasthttp.MethodGet, "/", nil),
	)

	assert.ErrorIs(t, err, cerrors.ErrValueRequired)
	assert.Nil(t, server)
}

func TestNew_NoHandlers(t *testing.T) {
	server, err := apiserver.New(
		apiserver.WithLogger(mockslogger.New()),
		apiserver.WithListenAddr(":9000"),
	)

	assert.ErrorIs(t, err, cerrors.ErrValueRequired)
	assert.Nil(t, server)
}

func TestNew_Success(t *testing.T) {
	server, err := apiserver.New(
		apiserver.WithLogger(mockslogger.New()),
		apiserver.WithListenAddr(":9000"),
		apiserver.WithReadTimeout(5*time.Second),
		apiserver.WithWriteTimeout(5*time.Second),
		apiserver.WithIdleTimeout(5*time.Second),
		apiserver.WithHTTPHandler(fasthttp.MethodGet, "/health", func(_ *fasthttp.RequestCtx) {}),
	)

	assert.NoError(t, err)
	assert.NotNil(t, server)
	assert.NotNil(t, server.FastHTTP)
	assert.Equal(t, ":9000", server.ListenAddr)
}

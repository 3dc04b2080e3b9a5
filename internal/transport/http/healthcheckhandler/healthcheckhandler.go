package healthcheckhandler

import (
	"fmt"
	"log/slog"

	"github.com/devchain-network/gitfeed/internal/cerrors"
	"github.com/devchain-network/gitfeed/internal/storage"
	"github.com/devchain-network/gitfeed/internal/transport/http/httphandler"
	"github.com/valyala/fasthttp"
)

var _ HealthCheckHandler = (*Handler)(nil) // compile time proof

// HealthCheckHandler defines http handler behaviours.
type HealthCheckHandler interface {
	httphandler.FastHTTPHandler
}

// Handler probes the event store with a trivial read and reports
// healthy/unhealthy. Must satisfy HealthCheckHandler interface.
type Handler struct {
	Logger  *slog.Logger
	Storage storage.EventStorer
	Version string
}

// Handle is a fasthttp handler function.
func (h Handler) Handle(ctx *fasthttp.RequestCtx) {
	ctx.SetContentType("application/json; charset=utf-8")

	if _, err := h.Storage.Latest(ctx, 1); err != nil {
		h.Logger.Error("health check store probe error", "error", err)
		ctx.SetStatusCode(fasthttp.StatusServiceUnavailable)
		ctx.SetBodyString(`{"status":"unhealthy"}`)

		return
	}

	ctx.SetStatusCode(fasthttp.StatusOK)
	ctx.SetBodyString(`{"status":"healthy","version":"` + h.Version + `"}`)
}

func (h Handler) checkRequired() error {
	if h.Logger == nil {
		return fmt.Errorf("healthcheckhandler.checkRequired Logger error: [%w]", cerrors.ErrValueRequired)
	}

	if h.Storage == nil {
		return fmt.Errorf("healthcheckhandler.checkRequired Storage error: [%w]", cerrors.ErrValueRequired)
	}

	if h.Version == "" {
		return fmt.Errorf("healthcheckhandler.checkRequired Version error: [%w]", cerrors.ErrValueRequired)
	}

	return nil
}

// Option represents option function type.
type Option func(*Handler) error

// WithLogger sets logger.
func WithLogger(l *slog.Logger) Option {
	return func(h *Handler) error {
		if l == nil {
			return fmt.Errorf("healthcheckhandler.WithLogger error: [%w]", cerrors.ErrValueRequired)
		}
		h.Logger = l

		return nil
	}
}

// WithStorage sets event storage.
func WithStorage(s storage.EventStorer) Option {
	return func(h *Handler) error {
		if s == nil {
			return fmt.Errorf("healthcheckhandler.WithStorage error: [%w]", cerrors.ErrValueRequired)
		}
		h.Storage = s

		return nil
	}
}

// WithVersion sets version information.
func WithVersion(s string) Option {
	return func(h *Handler) error {
		if s == "" {
			return fmt.Errorf("healthcheckhandler.WithVersion error: [%w]", cerrors.ErrValueRequired)
		}
		h.Version = s

		return nil
	}
}

// New instantiates new handler instance.
func New(options ...Option) (*Handler, error) {
	handler := new(Handler)

	for _, option := range options {
		if err := option(handler); err != nil {
			return nil, fmt.Errorf("healthcheckhandler.New option error: [%w]", err)
		}
	}

	if err := handler.checkRequired(); err != nil {
		return nil, err
	}

	return handler, nil
}

package eventshandler

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/devchain-network/gitfeed/internal/cerrors"
	"github.com/devchain-network/gitfeed/internal/storage"
	"github.com/devchain-network/gitfeed/internal/transport/http/httphandler"
	"github.com/valyala/fasthttp"
)

var _ EventsHandler = (*Handler)(nil) // compile time proof

// EventsHandler defines http handler behaviours.
type EventsHandler interface {
	httphandler.FastHTTPHandler
}

// Handler serves the latest stored events for ui polling, newest first.
// Must satisfy EventsHandler interface.
type Handler struct {
	Logger  *slog.Logger
	Storage storage.EventStorer
	Limit   int
}

// Handle is a fasthttp handler function.
func (h Handler) Handle(ctx *fasthttp.RequestCtx) {
	events, err := h.Storage.Latest(ctx, h.Limit)
	if err != nil {
		h.Logger.Error("events fetch error", "error", err)
		ctx.SetContentType("application/json; charset=utf-8")
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		ctx.SetBodyString(`{"error":"can not fetch events"}`)

		return
	}

	encoded, err := json.Marshal(events)
	if err != nil {
		h.Logger.Error("events encode error", "error", err)
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)

		return
	}

	ctx.SetContentType("application/json; charset=utf-8")
	ctx.SetStatusCode(fasthttp.StatusOK)
	ctx.SetBody(encoded)
}

func (h Handler) checkRequired() error {
	if h.Logger == nil {
		return fmt.Errorf("eventshandler.checkRequired Logger error: [%w]", cerrors.ErrValueRequired)
	}

	if h.Storage == nil {
		return fmt.Errorf("eventshandler.checkRequired Storage error: [%w]", cerrors.ErrValueRequired)
	}

	return nil
}

// Option represents option function type.
type Option func(*Handler) error

// WithLogger sets logger.
func WithLogger(l *slog.Logger) Option {
	return func(h *Handler) error {
		if l == nil {
			return fmt.Errorf("eventshandler.WithLogger error: [%w]", cerrors.ErrValueRequired)
		}
		h.Logger = l

		return nil
	}
}

// WithStorage sets event storage.
func WithStorage(s storage.EventStorer) Option {
	return func(h *Handler) error {
		if s == nil {
			return fmt.Errorf("eventshandler.WithStorage error: [%w]", cerrors.ErrValueRequired)
		}
		h.Storage = s

		return nil
	}
}

// WithLimit sets maximum amount of events to return.
func WithLimit(i int) Option {
	return func(h *Handler) error {
		if i <= 0 {
			return fmt.Errorf(
				"eventshandler.WithLimit error: [%w, '%d' received, must > 0]",
				cerrors.ErrInvalid, i,
			)
		}
		h.Limit = i

		return nil
	}
}

// New instantiates new handler instance.
func New(options ...Option) (*Handler, error) {
	handler := new(Handler)
	handler.Limit = storage.DefaultLatestEventsLimit

	for _, option := range options {
		if err := option(handler); err != nil {
			return nil, fmt.Errorf("eventshandler.New option error: [%w]", err)
		}
	}

	if err := handler.checkRequired(); err != nil {
		return nil, err
	}

	return handler, nil
}

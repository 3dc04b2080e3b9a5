package githubwebhookhandler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/IBM/sarama"
	"github.com/devchain-network/gitfeed/internal/cerrors"
	"github.com/devchain-network/gitfeed/internal/kafkacp"
	"github.com/devchain-network/gitfeed/internal/normalizer"
	"github.com/devchain-network/gitfeed/internal/storage"
	"github.com/devchain-network/gitfeed/internal/transport/http/httphandler"
	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
)

var _ GitHubWebhookHandler = (*Handler)(nil) // compile time proof

// GitHubWebhookHandler defines http handler behaviours.
type GitHubWebhookHandler interface {
	httphandler.FastHTTPHandler
}

// Handler receives github webhook deliveries, normalizes them into canonical
// events and stores them. MessageQueue is optional; when set, every stored
// event is also queued for kafka announce. Must satisfy GitHubWebhookHandler
// interface.
type Handler struct {
	Logger        *slog.Logger
	Storage       storage.EventStorer
	NormalizeFunc normalizer.NormalizeFunc
	MessageQueue  chan *sarama.ProducerMessage
	Topic         kafkacp.KafkaTopicIdentifier
}

type messageResponse struct {
	Message string `json:"message"`
	ID      string `json:"id,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func respondJSON(ctx *fasthttp.RequestCtx, statusCode int, body any) {
	ctx.SetContentType("application/json; charset=utf-8")
	ctx.SetStatusCode(statusCode)

	encoded, err := json.Marshal(body)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)

		return
	}

	ctx.SetBody(encoded)
}

// Handle is a fasthttp handler function.
func (h Handler) Handle(ctx *fasthttp.RequestCtx) {
	body := ctx.PostBody()

	if len(body) == 0 || !json.Valid(body) {
		h.Logger.Error("no parseable payload received", "length", len(body))
		respondJSON(ctx, fasthttp.StatusBadRequest, errorResponse{Error: "no payload received"})

		return
	}

	eventType := string(ctx.Request.Header.Peek("X-Github-Event"))

	deliveryID, err := uuid.Parse(string(ctx.Request.Header.Peek("X-Github-Delivery")))
	if err == nil {
		h.Logger.Info("github webhook delivery received", "delivery", deliveryID, "event", eventType)
	}

	event, err := h.NormalizeFunc(eventType, body)
	if err != nil {
		if errors.Is(err, cerrors.ErrEventNotTracked) {
			h.Logger.Info("skipping event", "event", eventType, "reason", err.Error())
			respondJSON(ctx, fasthttp.StatusOK, messageResponse{
				Message: fmt.Sprintf("event type '%s' is not tracked", eventType),
			})

			return
		}

		h.Logger.Error("normalize error", "error", err)
		respondJSON(ctx, fasthttp.StatusInternalServerError, errorResponse{Error: err.Error()})

		return
	}

	id, err := h.Storage.Store(ctx, event)
	if err != nil {
		h.Logger.Error("event store error", "error", err)
		respondJSON(ctx, fasthttp.StatusInternalServerError, errorResponse{Error: err.Error()})

		return
	}

	h.Logger.Info(
		"event stored",
		"id", id,
		"action", event.Action,
		"author", event.Author,
	)

	h.announce(id, event)

	respondJSON(ctx, fasthttp.StatusOK, messageResponse{
		Message: "webhook processed successfully",
		ID:      id.String(),
	})
}

// announce queues the stored event for the kafka producer workers. The
// queue is drop-on-full, persistence never waits on the announce leg.
func (h Handler) announce(id uuid.UUID, event *storage.Event) {
	if h.MessageQueue == nil {
		return
	}

	event.ID = id

	encoded, err := json.Marshal(event)
	if err != nil {
		h.Logger.Error("can not encode event for announce", "error", err)

		return
	}

	message := &sarama.ProducerMessage{
		Topic: h.Topic.String(),
		Key:   sarama.StringEncoder(id.String()),
		Value: sarama.ByteEncoder(encoded),
	}

	select {
	case h.MessageQueue <- message:
		h.Logger.Info("kafka message queued for announce", "key", id, "topic", h.Topic)
	default:
		h.Logger.Warn("announce queue is full, message dropped", "key", id)
	}
}

// Option represents option function type.
type Option func(*Handler) error

// WithLogger sets logger.
func WithLogger(l *slog.Logger) Option {
	return func(h *Handler) error {
		if l == nil {
			return fmt.Errorf("githubwebhookhandler.WithLogger error: [%w]", cerrors.ErrValueRequired)
		}
		h.Logger = l

		return nil
	}
}

// WithStorage sets event storage.
func WithStorage(s storage.EventStorer) Option {
	return func(h *Handler) error {
		if s == nil {
			return fmt.Errorf("githubwebhookhandler.WithStorage error: [%w]", cerrors.ErrValueRequired)
		}
		h.Storage = s

		return nil
	}
}

// WithNormalizeFunc sets normalize function.
func WithNormalizeFunc(fn normalizer.NormalizeFunc) Option {
	return func(h *Handler) error {
		if fn == nil {
			return fmt.Errorf("githubwebhookhandler.WithNormalizeFunc error: [%w]", cerrors.ErrValueRequired)
		}
		h.NormalizeFunc = fn

		return nil
	}
}

// WithTopic sets kafka topic name for announced events.
func WithTopic(s string) Option {
	return func(h *Handler) error {
		topic := kafkacp.KafkaTopicIdentifier(s)
		if !topic.Valid() {
			return fmt.Errorf(
				"githubwebhookhandler.WithTopic error: [%w, '%s' received]",
				cerrors.ErrInvalid, s,
			)
		}
		h.Topic = topic

		return nil
	}
}

// WithProducerMessageQueue sets kafka producer message queue for announced
// events.
func WithProducerMessageQueue(mq chan *sarama.ProducerMessage) Option {
	return func(h *Handler) error {
		if mq == nil {
			return fmt.Errorf("githubwebhookhandler.WithProducerMessageQueue error: [%w]", cerrors.ErrValueRequired)
		}
		h.MessageQueue = mq

		return nil
	}
}

func (h Handler) checkRequired() error {
	if h.Logger == nil {
		return fmt.Errorf("githubwebhookhandler.checkRequired Logger error: [%w]", cerrors.ErrValueRequired)
	}

	if h.Storage == nil {
		return fmt.Errorf("githubwebhookhandler.checkRequired Storage error: [%w]", cerrors.ErrValueRequired)
	}

	return nil
}

// New instantiates new handler instance.
func New(options ...Option) (*Handler, error) {
	handler := new(Handler)
	handler.NormalizeFunc = normalizer.Normalize

	for _, option := range options {
		if err := option(handler); err != nil {
			return nil, fmt.Errorf("githubwebhookhandler.New option error: [%w]", err)
		}
	}

	if err := handler.checkRequired(); err != nil {
		return nil, err
	}

	return handler, nil
}

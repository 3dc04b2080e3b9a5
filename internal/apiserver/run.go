package apiserver

import (
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"sync"
	"syscall"

	"github.com/IBM/sarama"
	"github.com/devchain-network/gitfeed/internal/kafkacp"
	"github.com/devchain-network/gitfeed/internal/kafkacp/kafkaproducer"
	"github.com/devchain-network/gitfeed/internal/slogger"
	"github.com/devchain-network/gitfeed/internal/storage"
	"github.com/devchain-network/gitfeed/internal/storage/eventstorage"
	"github.com/devchain-network/gitfeed/internal/transport/http/eventshandler"
	"github.com/devchain-network/gitfeed/internal/transport/http/githubwebhookhandler"
	"github.com/devchain-network/gitfeed/internal/transport/http/healthcheckhandler"
	"github.com/devchain-network/gitfeed/internal/transport/http/indexhandler"
	"github.com/valyala/fasthttp"
	"github.com/vigo/getenv"
)

// default values.
const (
	kpDefaultMessageQueueSize = 100

	defaultDatabaseURL = "postgres://localhost:5432/gitfeed"
)

// Run runs the server.
func Run() error {
	logLevel := getenv.String("LOG_LEVEL", slogger.DefaultLogLevel)
	listenAddr := getenv.TCPAddr("LISTEN_ADDR", ServerDefaultListenAddr)
	serverReadTimeout := getenv.Duration("SERVER_READ_TIMEOUT", ServerDefaultReadTimeout)
	serverWriteTimeout := getenv.Duration("SERVER_WRITE_TIMEOUT", ServerDefaultWriteTimeout)
	serverIdleTimeout := getenv.Duration("SERVER_IDLE_TIMEOUT", ServerDefaultIdleTimeout)

	databaseURL := getenv.String("DATABASE_URL", defaultDatabaseURL)
	databasePingBackoff := getenv.Duration("DB_PING_BACKOFF", storage.DefaultDBPingBackoff)
	databasePingMaxRetries := getenv.Int("DB_PING_MAX_RETRIES", storage.DefaultDBPingMaxRetries)

	kafkaBrokersList := getenv.String("KP_BROKERS", "")
	kafkaTopic := getenv.String("KP_TOPIC", kafkacp.KafkaTopicIdentifierEvents.String())
	kafkaMessageQueueSize := getenv.Int("KP_MESSAGE_QUEUE_SIZE", kpDefaultMessageQueueSize)
	kafkaDialTimeout := getenv.Duration("KP_DIAL_TIMEOUT", kafkaproducer.DefaultDialTimeout)
	kafkaReadTimeout := getenv.Duration("KP_READ_TIMEOUT", kafkaproducer.DefaultReadTimeout)
	kafkaWriteTimeout := getenv.Duration("KP_WRITE_TIMEOUT", kafkaproducer.DefaultWriteTimeout)
	kafkaBackoff := getenv.Duration("KP_BACKOFF", kafkaproducer.DefaultBackoff)
	kafkaMaxRetries := getenv.Int("KP_MAX_RETRIES", kafkaproducer.DefaultMaxRetries)

	if err := getenv.Parse(); err != nil {
		return fmt.Errorf("apiserver.Run getenv.Parse error: [%w]", err)
	}

	logger, err := slogger.New(
		slogger.WithLogLevelName(*logLevel),
	)
	if err != nil {
		return fmt.Errorf("apiserver.Run slogger.New error: [%w]", err)
	}

	eventStorage, err := eventstorage.New(
		eventstorage.WithLogger(logger),
		eventstorage.WithDSN(*databaseURL),
	)
	if err != nil {
		return fmt.Errorf("apiserver.Run eventstorage.New error: [%w]", err)
	}

	defer eventStorage.Pool.Close()

	if err = eventStorage.Ping(uint8(*databasePingMaxRetries), *databasePingBackoff); err != nil {
		return fmt.Errorf("apiserver.Run eventStorage.Ping error: [%w]", err)
	}

	logger.Info("connected to the database")

	// announce leg is enabled only when brokers are configured.
	var kafkaProducer sarama.AsyncProducer
	var messageQueue chan *sarama.ProducerMessage

	if *kafkaBrokersList != "" {
		kafkaProducer, err = kafkaproducer.New(
			kafkaproducer.WithLogger(logger),
			kafkaproducer.WithKafkaBrokers(*kafkaBrokersList),
			kafkaproducer.WithDialTimeout(*kafkaDialTimeout),
			kafkaproducer.WithReadTimeout(*kafkaReadTimeout),
			kafkaproducer.WithWriteTimeout(*kafkaWriteTimeout),
			kafkaproducer.WithBackoff(*kafkaBackoff),
			kafkaproducer.WithMaxRetries(*kafkaMaxRetries),
		)
		if err != nil {
			return fmt.Errorf("apiserver.Run kafkaproducer.New error: [%w]", err)
		}

		defer kafkaProducer.AsyncClose()

		messageQueue = make(chan *sarama.ProducerMessage, *kafkaMessageQueueSize)
		logger.Info("connected to kafka brokers", "addrs", *kafkaBrokersList)
	}

	indexHandler := indexhandler.New()

	healthCheckHandler, err := healthcheckhandler.New(
		healthcheckhandler.WithLogger(logger),
		healthcheckhandler.WithStorage(eventStorage),
		healthcheckhandler.WithVersion(ServerVersion),
	)
	if err != nil {
		return fmt.Errorf("apiserver.Run healthcheckhandler.New error: [%w]", err)
	}

	webhookHandlerOptions := []githubwebhookhandler.Option{
		githubwebhookhandler.WithLogger(logger),
		githubwebhookhandler.WithStorage(eventStorage),
	}
	if messageQueue != nil {
		webhookHandlerOptions = append(
			webhookHandlerOptions,
			githubwebhookhandler.WithTopic(*kafkaTopic),
			githubwebhookhandler.WithProducerMessageQueue(messageQueue),
		)
	}

	githubWebhookHandler, err := githubwebhookhandler.New(webhookHandlerOptions...)
	if err != nil {
		return fmt.Errorf("apiserver.Run githubwebhookhandler.New error: [%w]", err)
	}

	eventsHandler, err := eventshandler.New(
		eventshandler.WithLogger(logger),
		eventshandler.WithStorage(eventStorage),
		eventshandler.WithLimit(storage.DefaultLatestEventsLimit),
	)
	if err != nil {
		return fmt.Errorf("apiserver.Run eventshandler.New error: [%w]", err)
	}

	server, err := New(
		WithLogger(logger),
		WithListenAddr(*listenAddr),
		WithReadTimeout(*serverReadTimeout),
		WithWriteTimeout(*serverWriteTimeout),
		WithIdleTimeout(*serverIdleTimeout),
		WithHTTPHandler(fasthttp.MethodGet, "/", indexHandler.Handle),
		WithHTTPHandler(fasthttp.MethodGet, "/health", healthCheckHandler.Handle),
		WithHTTPHandler(fasthttp.MethodGet, "/api/events", eventsHandler.Handle),
		WithHTTPHandler(fasthttp.MethodPost, "/webhook", githubWebhookHandler.Handle),
	)
	if err != nil {
		return fmt.Errorf("apiserver.Run apiserver.New error: [%w]", err)
	}

	doneChannel := make(chan struct{})

	var wg sync.WaitGroup

	if messageQueue != nil {
		numMessageWorkers := runtime.NumCPU()
		logger.Info(
			"starting announce message workers",
			"count", numMessageWorkers,
			"queue size", *kafkaMessageQueueSize,
		)

		for i := range numMessageWorkers {
			wg.Add(1)
			go func() {
				defer func() {
					wg.Done()
					logger.Info("terminating announce worker", "id", i)
				}()

				for msg := range messageQueue {
					kafkaProducer.Input() <- msg

					select {
					case success := <-kafkaProducer.Successes():
						logger.Info(
							"event announced",
							"worker", i,
							"topic", success.Topic,
							"partition", success.Partition,
							"offset", success.Offset,
						)
					case producerErr := <-kafkaProducer.Errors():
						logger.Error("event announce error", "error", producerErr)
					}
				}
			}()
		}
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig

		if errStop := server.Stop(); errStop != nil {
			logger.Error("server stop error", "error", errStop)
		}
		if messageQueue != nil {
			close(messageQueue)
		}
		close(doneChannel)
	}()

	if errStart := server.Start(); errStart != nil {
		return fmt.Errorf("apiserver.Run server.Start error: [%w]", errStart)
	}

	<-doneChannel
	wg.Wait()
	logger.Info("terminating, all clear")

	return nil
}

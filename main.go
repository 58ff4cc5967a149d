package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	restapi "github.com/hedisam/ringqueue/api/rest"
	"github.com/hedisam/ringqueue/internal/custompromauto"
	"github.com/hedisam/ringqueue/internal/forward"
	"github.com/hedisam/ringqueue/internal/relay"
	"github.com/hedisam/ringqueue/internal/store/memdb"
)

type Options struct {
	ServerAddr     string
	Capacity       uint
	MaxBytes       uint
	ForwardAddr    string
	PollInterval   time.Duration
	RelayCapacity  uint
	OverflowPolicy string
	Verbose        bool
}

func main() {
	var opts Options
	flag.StringVar(&opts.ServerAddr, "server-addr", "localhost:8080", "Server addr to serve the http server on")
	flag.UintVar(&opts.Capacity, "capacity", memdb.DefaultCapacity, "Number of messages the queue can hold. Cannot be less than 1")
	flag.UintVar(&opts.MaxBytes, "max-bytes", 0, "Upper bound on the queue storage allocated at startup, in bytes. 0 means no limit")
	flag.StringVar(&opts.ForwardAddr, "forward-addr", "", "Webhook to forward dequeued messages to. Messages stay in the queue when empty")
	flag.DurationVar(&opts.PollInterval, "poll-interval", time.Second, "How often the queue is drained when forwarding")
	flag.UintVar(&opts.RelayCapacity, "relay-capacity", 64, "Number of messages buffered between the queue and the webhook")
	flag.StringVar(&opts.OverflowPolicy, "overflow-policy", relay.PolicyBlock.String(), "What to do when the relay buffer is full: block, drop-newest or drop-oldest")
	flag.BoolVar(&opts.Verbose, "v", false, "Verbose output")
	flag.Parse()

	logger := logrus.New()
	policy := ensureValidOpts(logger, opts)

	if opts.Verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	err := custompromauto.RegisterRuntimeCollectors()
	if err != nil {
		logger.WithError(err).Fatal("Failed to register runtime metrics")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	queue, err := memdb.NewQueue(opts.Capacity, memdb.WithMaxBytes(opts.MaxBytes))
	if err != nil {
		logger.WithError(err).WithField("capacity", opts.Capacity).Fatal("Failed to create queue")
	}
	defer func() {
		err := queue.Close()
		if err != nil {
			logger.WithError(err).Error("Failed to release queue")
		}
	}()

	if opts.ForwardAddr != "" {
		mustStartForwarding(ctx, logger, queue, opts, policy)
	}

	restServer := restapi.NewServer(logger, queue)
	mux := http.NewServeMux()
	restapi.RegisterFunc(logger, mux, http.MethodPut, "/api/v1/messages", restServer.Enqueue)
	restapi.RegisterFunc(logger, mux, http.MethodGet, "/api/v1/messages/next", restServer.Dequeue)
	restapi.RegisterFunc(logger, mux, http.MethodGet, "/api/v1/messages/peek", restServer.Peek)
	restapi.RegisterFunc(logger, mux, http.MethodGet, "/api/v1/stats", restServer.GetStats)

	// use a custom prom registry to avoid recording the default http handler metrics
	mux.Handle("/metrics", promhttp.HandlerFor(custompromauto.Registry(), promhttp.HandlerOpts{}))

	mustListenAndServe(ctx, logger, opts.ServerAddr, mux)
}

func mustStartForwarding(ctx context.Context, logger *logrus.Logger, queue *memdb.Queue, opts Options, policy relay.Policy) {
	stream := forward.Stream(ctx, logger, queue, opts.PollInterval)
	buffered, err := relay.Buffer(ctx, logger, stream, opts.RelayCapacity, policy)
	if err != nil {
		logger.WithError(err).WithField("relay_capacity", opts.RelayCapacity).Fatal("Failed to create relay buffer")
	}

	httpClient := &http.Client{Timeout: time.Second * 10}
	forwarder := forward.New(logger, httpClient, opts.ForwardAddr)
	go forwarder.Start(ctx, buffered)

	logger.WithFields(logrus.Fields{
		"forward_addr": opts.ForwardAddr,
		"policy":       policy.String(),
	}).Info("Forwarding dequeued messages")
}

func mustListenAndServe(ctx context.Context, logger *logrus.Logger, addr string, handler http.Handler) {
	srv := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	go func() {
		logger.WithField("addr", addr).Info("Serving server...")
		err := srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("Server failed with error")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	logger.Info("Shutting down server...")
	err := srv.Shutdown(shutdownCtx)
	if err != nil && !errors.Is(err, context.DeadlineExceeded) {
		logger.WithError(err).Error("Failed to shutdown server gracefully")
	}
}

func ensureValidOpts(logger *logrus.Logger, opts Options) relay.Policy {
	if opts.ServerAddr == "" {
		logger.Error("--server-addr is required")
		flag.Usage()
		os.Exit(1)
	}
	if opts.Capacity < 1 {
		logger.Error("--capacity is too small, it cannot be less than 1")
		flag.Usage()
		os.Exit(1)
	}
	if opts.ForwardAddr != "" && opts.PollInterval < time.Millisecond*10 {
		logger.Error("--poll-interval is too small, it cannot be less than 10ms")
		flag.Usage()
		os.Exit(1)
	}
	if opts.ForwardAddr != "" && opts.RelayCapacity < 1 {
		logger.Error("--relay-capacity is too small, it cannot be less than 1")
		flag.Usage()
		os.Exit(1)
	}

	policy, err := relay.ParsePolicy(opts.OverflowPolicy)
	if err != nil {
		logger.WithError(err).Error("--overflow-policy is invalid")
		flag.Usage()
		os.Exit(1)
	}
	return policy
}

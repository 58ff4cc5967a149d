package forward

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"

	"github.com/hedisam/pipeline/chans"
	"github.com/hedisam/ringqueue/internal/store"
)

type Source interface {
	Dequeue(ctx context.Context) (store.Message, error)
}

// Stream drains source every pollInterval and emits the dequeued messages in order.
func Stream(ctx context.Context, logger *logrus.Logger, source Source, pollInterval time.Duration) <-chan store.Message {
	out := make(chan store.Message)

	go func() {
		defer close(out)

		t := time.NewTicker(pollInterval)
		defer t.Stop()

		for range chans.ReceiveOrDoneSeq(ctx, t.C) {
			for {
				msg, err := source.Dequeue(ctx)
				if err != nil {
					if !errors.Is(err, store.ErrNotFound) {
						logger.WithError(err).Error("Failed to dequeue message")
					}
					break
				}

				logger.WithField("seq", msg.Seq).Debug("Dequeued message for forwarding")
				if !chans.SendOrDone(ctx, out, msg) {
					return
				}
			}
		}
	}()

	return out
}

type config struct {
	newBackOff func() backoff.BackOff
}

type Option func(*config)

// WithBackOff overrides the retry policy used for each delivery.
func WithBackOff(newBackOff func() backoff.BackOff) Option {
	return func(c *config) {
		if newBackOff != nil {
			c.newBackOff = newBackOff
		}
	}
}

// Forwarder delivers messages to a webhook, one POST per message.
type Forwarder struct {
	logger      *logrus.Logger
	httpClient  *http.Client
	webhookAddr string
	newBackOff  func() backoff.BackOff
}

func New(logger *logrus.Logger, httpClient *http.Client, webhookAddr string, opts ...Option) *Forwarder {
	cfg := &config{
		newBackOff: func() backoff.BackOff { return newExponentialBackoffConfig() },
	}
	for opt := range slices.Values(opts) {
		opt(cfg)
	}

	return &Forwarder{
		logger:      logger,
		httpClient:  httpClient,
		webhookAddr: webhookAddr,
		newBackOff:  cfg.newBackOff,
	}
}

// Start forwards every message received from in until in is closed or ctx is done.
// Messages that cannot be delivered after retrying are logged and dropped.
func (f *Forwarder) Start(ctx context.Context, in <-chan store.Message) {
	for msg := range chans.ReceiveOrDoneSeq(ctx, in) {
		err := f.deliver(ctx, msg)
		if err != nil {
			f.logger.WithField("seq", msg.Seq).WithError(err).Error("Failed to forward message")
			failedDeliveries.Inc()
			continue
		}
		deliveredMessages.Inc()
	}
}

func (f *Forwarder) deliver(ctx context.Context, msg store.Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	bk := backoff.WithContext(f.newBackOff(), ctx)
	_, err = backoff.RetryWithData[struct{}](func() (struct{}, error) {
		return struct{}{}, f.post(ctx, data)
	}, bk)
	if err != nil {
		return fmt.Errorf("post message with retry: %w", err)
	}

	return nil
}

func (f *Forwarder) post(ctx context.Context, data []byte) error {
	// a fresh request per attempt; the body reader is consumed by the previous one
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.webhookAddr, bytes.NewReader(data))
	if err != nil {
		return backoff.Permanent(fmt.Errorf("create new http request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Content-Length", strconv.Itoa(len(data)))

	resp, err := f.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return backoff.Permanent(fmt.Errorf("could not make http call: %w", err))
		}
		f.logger.WithError(err).Error("Failed to make http request, retrying...")
		return fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	case resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests:
		body, _ := io.ReadAll(resp.Body)
		f.logger.WithField("response", string(body)).Error("Webhook rejected message")
		return backoff.Permanent(fmt.Errorf("received unexpected status: %s", resp.Status))
	default:
		f.logger.WithField("status", resp.Status).Warn("Webhook unavailable, retrying...")
		return fmt.Errorf("received unexpected status: %s", resp.Status)
	}
}

func newExponentialBackoffConfig() *backoff.ExponentialBackOff {
	return backoff.NewExponentialBackOff(
		backoff.WithMaxElapsedTime(time.Second*3),
		backoff.WithMaxInterval(time.Second),
		backoff.WithInitialInterval(time.Millisecond*100),
		backoff.WithMultiplier(2),
		backoff.WithRandomizationFactor(0.2),
	)
}

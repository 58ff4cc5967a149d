package rest

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/hedisam/ringqueue/internal/store"
)

const (
	// MaxBodyLength is the largest message body accepted by Enqueue, in bytes.
	MaxBodyLength = 64 * 1024
)

type Queue interface {
	Enqueue(ctx context.Context, body string) (store.Message, error)
	Dequeue(ctx context.Context) (store.Message, error)
	Peek(ctx context.Context) (store.Message, error)
	Stats(ctx context.Context) (store.Stats, error)
}

type Server struct {
	logger *logrus.Logger
	queue  Queue
}

func NewServer(logger *logrus.Logger, queue Queue) *Server {
	return &Server{
		logger: logger,
		queue:  queue,
	}
}

func (s *Server) Enqueue(ctx context.Context, req *EnqueueRequest) (*EnqueueResponse, error) {
	logger := s.logger.WithContext(ctx)

	if strings.TrimSpace(req.Body) == "" {
		logger.Warn("Message body is required to enqueue")
		return nil, NewErrf(http.StatusBadRequest, "Missing required field: 'body'")
	}
	if len(req.Body) > MaxBodyLength {
		logger.WithField("length", len(req.Body)).Warn("Message body too large to enqueue")
		return nil, NewErrf(http.StatusBadRequest, "Field 'body' cannot be longer than %d bytes", MaxBodyLength)
	}

	msg, err := s.queue.Enqueue(ctx, req.Body)
	if err != nil {
		rejectedErr := &store.RejectedError{}
		if errors.As(err, &rejectedErr) && errors.Is(err, store.ErrQueueFull) {
			logger.WithField("seq", rejectedErr.Message.Seq).Warn("Queue is full, rejecting message")
			e := NewErrf(http.StatusTooManyRequests, "Queue is full, please retry later")
			e.Rejected = convertStoredToAPIMessage(rejectedErr.Message)
			return nil, e
		}
		logger.WithError(err).Error("Failed to enqueue message")
		return nil, NewErrf(http.StatusInternalServerError, "could not enqueue message")
	}

	logger.WithField("seq", msg.Seq).Debug("Enqueued message")
	return &EnqueueResponse{
		Message: convertStoredToAPIMessage(msg),
	}, nil
}

func (s *Server) Dequeue(ctx context.Context, _ *DequeueRequest) (*DequeueResponse, error) {
	msg, err := s.queue.Dequeue(ctx)
	if err != nil {
		return nil, s.convertReadErr(ctx, err, "dequeue")
	}

	return &DequeueResponse{
		Message: convertStoredToAPIMessage(msg),
	}, nil
}

func (s *Server) Peek(ctx context.Context, _ *PeekRequest) (*PeekResponse, error) {
	msg, err := s.queue.Peek(ctx)
	if err != nil {
		return nil, s.convertReadErr(ctx, err, "peek")
	}

	return &PeekResponse{
		Message: convertStoredToAPIMessage(msg),
	}, nil
}

func (s *Server) GetStats(ctx context.Context, _ *GetStatsRequest) (*GetStatsResponse, error) {
	stats, err := s.queue.Stats(ctx)
	if err != nil {
		s.logger.WithContext(ctx).WithError(err).Error("Failed to get queue stats")
		return nil, NewErrf(http.StatusInternalServerError, "could not get queue stats")
	}

	return &GetStatsResponse{
		Len:      stats.Len,
		Cap:      stats.Cap,
		Full:     stats.Full,
		Enqueued: stats.Enqueued,
		Dequeued: stats.Dequeued,
		Rejected: stats.Rejected,
	}, nil
}

func (s *Server) convertReadErr(ctx context.Context, err error, op string) error {
	if errors.Is(err, store.ErrNotFound) {
		return NewErrf(http.StatusNotFound, "Queue is empty")
	}

	s.logger.WithContext(ctx).WithField("op", op).WithError(err).Error("Failed to read message from queue")
	return NewErrf(http.StatusInternalServerError, "could not %s message", op)
}

func convertStoredToAPIMessage(msg store.Message) *Message {
	return &Message{
		Seq:        msg.Seq,
		Body:       msg.Body,
		EnqueuedAt: msg.EnqueuedAt,
	}
}

package rest

import (
	"net/http"
	"time"
)

// request and response types are defined below
// these types can be defined as protobuf messages in a production system (specifically if using gRPC + gRPC-gateway)

type EnqueueRequest struct {
	Body string `json:"body"`
}

type EnqueueResponse struct {
	Message *Message `json:"message"`
}

// StatusCode makes RegisterFunc answer a successful enqueue with 201.
func (*EnqueueResponse) StatusCode() int {
	return http.StatusCreated
}

type DequeueRequest struct{}

type DequeueResponse struct {
	Message *Message `json:"message"`
}

type PeekRequest struct{}

type PeekResponse struct {
	Message *Message `json:"message"`
}

type GetStatsRequest struct{}

type GetStatsResponse struct {
	Len      int    `json:"len"`
	Cap      int    `json:"cap"`
	Full     bool   `json:"full"`
	Enqueued uint64 `json:"enqueued"`
	Dequeued uint64 `json:"dequeued"`
	Rejected uint64 `json:"rejected"`
}

type Message struct {
	Seq        uint64    `json:"seq,omitempty"`
	Body       string    `json:"body"`
	EnqueuedAt time.Time `json:"enqueuedAt,omitzero"`
}

package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/sirupsen/logrus"
)

const maxRequestBytes = MaxBodyLength + 1024

// Err is returned by Server methods to control the http status and message sent to the client.
type Err struct {
	StatusCode int      `json:"-"`
	Message    string   `json:"message"`
	Rejected   *Message `json:"rejected,omitempty"`
}

func NewErrf(statusCode int, format string, args ...any) *Err {
	return &Err{
		StatusCode: statusCode,
		Message:    fmt.Sprintf(format, args...),
	}
}

func (e *Err) Error() string {
	return e.Message
}

// StatusCoder is implemented by responses that are not answered with 200.
type StatusCoder interface {
	StatusCode() int
}

// HandlerFunc is the shape of every Server method exposed over http.
type HandlerFunc[Req, Resp any] func(ctx context.Context, req *Req) (*Resp, error)

// RegisterFunc registers fn on mux for the given method and path.
// The json request body, if any, is decoded into Req and the returned Resp or *Err is encoded as json.
func RegisterFunc[Req, Resp any](logger *logrus.Logger, mux *http.ServeMux, method, path string, fn HandlerFunc[Req, Resp]) {
	mux.HandleFunc(method+" "+path, func(w http.ResponseWriter, r *http.Request) {
		logger := logger.WithFields(logrus.Fields{
			"method": method,
			"path":   r.URL.Path,
		})

		req := new(Req)
		body := http.MaxBytesReader(w, r.Body, maxRequestBytes)
		err := json.NewDecoder(body).Decode(req)
		if err != nil && !errors.Is(err, io.EOF) {
			logger.WithError(err).Warn("Failed to decode request body")
			writeJSON(logger, w, http.StatusBadRequest, NewErrf(http.StatusBadRequest, "Invalid request body"))
			return
		}

		resp, err := fn(r.Context(), req)
		if err != nil {
			apiErr := &Err{}
			if errors.As(err, &apiErr) {
				writeJSON(logger, w, apiErr.StatusCode, apiErr)
				return
			}
			logger.WithError(err).Error("Handler failed with unexpected error")
			writeJSON(logger, w, http.StatusInternalServerError, NewErrf(http.StatusInternalServerError, "Internal server error"))
			return
		}

		status := http.StatusOK
		if sc, ok := any(resp).(StatusCoder); ok {
			status = sc.StatusCode()
		}
		writeJSON(logger, w, status, resp)
	})
}

func writeJSON(logger *logrus.Entry, w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		logger.WithError(err).Error("Failed to encode response")
	}
}

package rest_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	restapi "github.com/hedisam/ringqueue/api/rest"
	"github.com/hedisam/ringqueue/internal/store/memdb"
)

func newTestMux(t *testing.T, capacity uint) *http.ServeMux {
	t.Helper()

	logger := logrus.New()
	q, err := memdb.NewQueue(capacity)
	require.NoError(t, err)
	t.Cleanup(func() { _ = q.Close() })

	s := restapi.NewServer(logger, q)
	mux := http.NewServeMux()
	restapi.RegisterFunc(logger, mux, http.MethodPut, "/api/v1/messages", s.Enqueue)
	restapi.RegisterFunc(logger, mux, http.MethodGet, "/api/v1/messages/next", s.Dequeue)
	restapi.RegisterFunc(logger, mux, http.MethodGet, "/api/v1/messages/peek", s.Peek)
	restapi.RegisterFunc(logger, mux, http.MethodGet, "/api/v1/stats", s.GetStats)
	return mux
}

func do(t *testing.T, mux *http.ServeMux, method, path, body string) (int, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	var decoded map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&decoded))
	return rec.Code, decoded
}

func TestRegisterFuncRoundTrip(t *testing.T) {
	mux := newTestMux(t, 2)

	code, resp := do(t, mux, http.MethodGet, "/api/v1/messages/next", "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Queue is empty", resp["message"])

	for _, body := range []string{"first", "second"} {
		code, resp = do(t, mux, http.MethodPut, "/api/v1/messages", `{"body":"`+body+`"}`)
		require.Equal(t, http.StatusCreated, code)
		assert.Equal(t, body, resp["message"].(map[string]any)["body"])
	}

	code, resp = do(t, mux, http.MethodPut, "/api/v1/messages", `{"body":"third"}`)
	assert.Equal(t, http.StatusTooManyRequests, code)
	assert.Equal(t, "Queue is full, please retry later", resp["message"])
	assert.Equal(t, "third", resp["rejected"].(map[string]any)["body"])

	code, resp = do(t, mux, http.MethodGet, "/api/v1/stats", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, map[string]any{
		"len": 2.0, "cap": 2.0, "full": true, "enqueued": 2.0, "dequeued": 0.0, "rejected": 1.0,
	}, resp)

	code, resp = do(t, mux, http.MethodGet, "/api/v1/messages/peek", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "first", resp["message"].(map[string]any)["body"])

	for _, body := range []string{"first", "second"} {
		code, resp = do(t, mux, http.MethodGet, "/api/v1/messages/next", "")
		require.Equal(t, http.StatusOK, code)
		assert.Equal(t, body, resp["message"].(map[string]any)["body"])
	}
}

func TestRegisterFuncInvalidBody(t *testing.T) {
	mux := newTestMux(t, 2)

	code, resp := do(t, mux, http.MethodPut, "/api/v1/messages", `{"body":`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Invalid request body", resp["message"])

	code, resp = do(t, mux, http.MethodPut, "/api/v1/messages", "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Missing required field: 'body'", resp["message"])
}

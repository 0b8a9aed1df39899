package advisory

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"go.uber.org/zap/zaptest"

	"go-soiladvisor/config"
	"go-soiladvisor/models"
)

var testModels = []string{"model-a", "model-b", "model-c"}

const okBody = `{"candidates":[{"content":{"parts":[{"text":"Suggested Levels: N: 40, P: 20, K: 100, pH: 6.8, Moisture: 55%\nOverview: fine"}]}}]}`

type fakeUpstream struct {
	mu     sync.Mutex
	calls  []string
	bodies []string
	reply  map[string]func(w http.ResponseWriter)
}

func (f *fakeUpstream) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	data, _ := io.ReadAll(r.Body)

	model := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/v1/models/"), ":generateContent")
	f.mu.Lock()
	f.calls = append(f.calls, model)
	f.bodies = append(f.bodies, string(data))
	reply, ok := f.reply[model]
	f.mu.Unlock()

	if r.URL.Query().Get("key") != "test-key" {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte("bad key"))
		return
	}
	if ok {
		reply(w)
		return
	}
	w.WriteHeader(http.StatusNotFound)
	_, _ = w.Write([]byte("model not found"))
}

func (f *fakeUpstream) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeUpstream) Bodies() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.bodies...)
}

func (f *fakeUpstream) set(model string, reply func(w http.ResponseWriter)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reply[model] = reply
}

func status(code int, body string) func(w http.ResponseWriter) {
	return func(w http.ResponseWriter) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_, _ = w.Write([]byte(body))
	}
}

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	return NewClient(config.GeminiConfig{
		APIKey:     "test-key",
		BaseURL:    baseURL,
		APIVersion: "v1",
		Models:     testModels,
	}, zaptest.NewLogger(t))
}

var testRequest = models.AdvisoryRequest{
	Reading: models.SoilReading{Nitrogen: "40", Phosphorus: "20", Potassium: "100"},
	State:   "Kerala",
	Crop:    "Tea",
	Date:    "2024-07-01",
}

func TestClientFirstModelSucceeds(t *testing.T) {
	up := &fakeUpstream{reply: map[string]func(http.ResponseWriter){
		"model-a": status(http.StatusOK, okBody),
		"model-b": status(http.StatusOK, okBody),
	}}
	srv := httptest.NewServer(up)
	defer srv.Close()

	text, err := newTestClient(t, srv.URL).Generate(context.Background(), testRequest)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(text, "Suggested Levels: N: 40"))
	assert.Equal(t, []string{"model-a"}, up.Calls())

	bodies := up.Bodies()
	require.Len(t, bodies, 1)
	prompt := gjson.Get(bodies[0], "contents.0.parts.0.text").String()
	assert.Equal(t, BuildPrompt(testRequest), prompt)
}

func TestClientFallsBackInOrder(t *testing.T) {
	up := &fakeUpstream{reply: map[string]func(http.ResponseWriter){
		"model-a": status(http.StatusInternalServerError, "boom"),
		"model-b": status(http.StatusOK, okBody),
	}}
	srv := httptest.NewServer(up)
	defer srv.Close()

	text, err := newTestClient(t, srv.URL).Generate(context.Background(), testRequest)
	require.NoError(t, err)
	assert.Contains(t, text, "Overview: fine")
	assert.Equal(t, []string{"model-a", "model-b"}, up.Calls())
}

func TestClientThirdModel(t *testing.T) {
	up := &fakeUpstream{reply: map[string]func(http.ResponseWriter){
		"model-a": status(http.StatusTooManyRequests, "slow down"),
		"model-b": status(http.StatusNotFound, "gone"),
		"model-c": status(http.StatusOK, okBody),
	}}
	srv := httptest.NewServer(up)
	defer srv.Close()

	_, err := newTestClient(t, srv.URL).Generate(context.Background(), testRequest)
	require.NoError(t, err)
	assert.Equal(t, testModels, up.Calls())
}

func TestClientAllModelsFail(t *testing.T) {
	up := &fakeUpstream{reply: map[string]func(http.ResponseWriter){
		"model-a": status(http.StatusInternalServerError, "a down"),
		"model-b": status(http.StatusBadGateway, "b down"),
		"model-c": status(http.StatusServiceUnavailable, "c down"),
	}}
	srv := httptest.NewServer(up)
	defer srv.Close()

	_, err := newTestClient(t, srv.URL).Generate(context.Background(), testRequest)
	require.Error(t, err)
	assert.Equal(t, testModels, up.Calls())

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "model-c", se.Model)
	assert.Equal(t, http.StatusServiceUnavailable, se.StatusCode)
	assert.Equal(t, "API Error (503): c down", Describe(err))
}

func TestClientServiceErrorStopsChain(t *testing.T) {
	up := &fakeUpstream{reply: map[string]func(http.ResponseWriter){
		"model-a": status(http.StatusOK, `{"error":{"code":400,"message":"API key not valid"}}`),
		"model-b": status(http.StatusOK, okBody),
	}}
	srv := httptest.NewServer(up)
	defer srv.Close()

	_, err := newTestClient(t, srv.URL).Generate(context.Background(), testRequest)
	var sve *ServiceError
	require.True(t, errors.As(err, &sve))
	assert.Equal(t, "API Error: API key not valid", Describe(err))
	assert.Equal(t, []string{"model-a"}, up.Calls())
}

func TestClientUnexpectedShapes(t *testing.T) {
	up := &fakeUpstream{reply: map[string]func(http.ResponseWriter){
		"model-a": status(http.StatusOK, `<html>not json</html>`),
	}}
	srv := httptest.NewServer(up)
	defer srv.Close()

	_, err := newTestClient(t, srv.URL).Generate(context.Background(), testRequest)
	assert.ErrorIs(t, err, ErrUnexpectedResponse)
	assert.True(t, strings.HasPrefix(Describe(err), "Error: "))

	up.set("model-a", status(http.StatusOK, `{"candidates":[]}`))
	text, err := newTestClient(t, srv.URL).Generate(context.Background(), testRequest)
	require.NoError(t, err)
	assert.Equal(t, NoOverviewText, text)
}

func TestClientTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	baseURL := srv.URL
	srv.Close()

	_, err := newTestClient(t, baseURL).Generate(context.Background(), testRequest)
	require.Error(t, err)

	var ae *AttemptError
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, "model-c", ae.Model)

	msg := Describe(err)
	assert.True(t, strings.HasPrefix(msg, "Error: "))
	assert.NotContains(t, msg, "test-key")
}

func TestClientCanceledContext(t *testing.T) {
	up := &fakeUpstream{reply: map[string]func(http.ResponseWriter){}}
	srv := httptest.NewServer(up)
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestClient(t, srv.URL).Generate(ctx, testRequest)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, up.Calls())
}

func TestClientCheckKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/models", r.URL.Path)
		if r.URL.Query().Get("key") == "test-key" {
			_, _ = w.Write([]byte(`{"models":[]}`))
			return
		}
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("API key not valid"))
	}))
	defer srv.Close()

	msg, ok := newTestClient(t, srv.URL).CheckKey(context.Background())
	assert.True(t, ok)
	assert.Equal(t, "API Key is working!", msg)

	bad := newTestClient(t, srv.URL)
	bad.apiKey = "wrong"
	msg, ok = bad.CheckKey(context.Background())
	assert.False(t, ok)
	assert.Equal(t, "API Key Error: API key not valid", msg)
}

func TestClientCheckKeyTruncatedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, buf, err := w.(http.Hijacker).Hijack()
		require.NoError(t, err)
		defer conn.Close()
		_, _ = buf.WriteString("HTTP/1.1 400 Bad Request\r\nContent-Length: 100\r\n\r\npartial")
		_ = buf.Flush()
	}))
	defer srv.Close()

	msg, ok := newTestClient(t, srv.URL).CheckKey(context.Background())
	assert.False(t, ok)
	assert.True(t, strings.HasPrefix(msg, "Network Error: reading response (status 400)"), msg)
	assert.NotContains(t, msg, "test-key")
}

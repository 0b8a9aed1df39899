package advisory

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"go-soiladvisor/config"
	"go-soiladvisor/models"
)

type stubGenerator struct {
	text string
	err  error
	got  models.AdvisoryRequest
}

func (s *stubGenerator) Generate(ctx context.Context, req models.AdvisoryRequest) (string, error) {
	s.got = req
	return s.text, s.err
}

func newTestService(t *testing.T, gen Generator) *Service {
	s := NewService(gen, zaptest.NewLogger(t))
	s.now = func() time.Time { return time.Date(2024, 5, 17, 8, 0, 0, 0, time.UTC) }
	return s
}

func TestServiceAdviseExtracts(t *testing.T) {
	gen := &stubGenerator{text: "Suggested Levels: N: 40, P: 20, K: 100, pH: 6.8, Moisture: 55%\nOverview: ok"}
	req := models.AdvisoryRequest{Reading: models.SoilReading{Nitrogen: "12"}, State: "Goa", Crop: "Rice"}

	res := newTestService(t, gen).Advise(context.Background(), req, models.SuggestedLevels{})

	assert.False(t, res.Failed)
	assert.True(t, res.Extracted)
	assert.Equal(t, models.SuggestedLevels{N: "40", P: "20", K: "100", PH: "6.8", Moisture: "55"}, res.Suggested)
	assert.Equal(t, models.CurrentLevels{N: "12", P: "0", K: "0", PH: "-", Moisture: "-"}, res.Current)
	assert.Equal(t, "2024-05-17", gen.got.Date)
}

func TestServiceAdviseFallsBackToPrior(t *testing.T) {
	prior := models.SuggestedLevels{N: "1", P: "2", K: "3", PH: "4", Moisture: "5"}
	gen := &stubGenerator{text: "I cannot answer in that format."}

	res := newTestService(t, gen).Advise(context.Background(), models.AdvisoryRequest{Date: "2024-01-01"}, prior)

	assert.False(t, res.Failed)
	assert.False(t, res.Extracted)
	assert.Equal(t, prior, res.Suggested)
	assert.Equal(t, "I cannot answer in that format.", res.Overview)
	assert.Equal(t, "2024-01-01", gen.got.Date)
}

func TestServiceAdviseDefaultsPrior(t *testing.T) {
	res := newTestService(t, &stubGenerator{text: "nothing"}).Advise(context.Background(), models.AdvisoryRequest{}, models.SuggestedLevels{})
	assert.Equal(t, models.DefaultSuggested, res.Suggested)
}

func TestServiceAdviseErrorIsText(t *testing.T) {
	gen := &stubGenerator{err: &StatusError{Model: "m", StatusCode: 403, Body: "denied"}}

	res := newTestService(t, gen).Advise(context.Background(), models.AdvisoryRequest{}, models.SuggestedLevels{})

	assert.True(t, res.Failed)
	assert.False(t, res.Extracted)
	assert.Equal(t, "API Error (403): denied", res.Overview)
	assert.Equal(t, models.DefaultSuggested, res.Suggested)
}

func TestServiceAdviseErrorTextNeverExtracts(t *testing.T) {
	gen := &stubGenerator{err: &ServiceError{Message: "Suggested Levels: N: 1, P: 2, K: 3, pH: 4, Moisture: 5"}}

	res := newTestService(t, gen).Advise(context.Background(), models.AdvisoryRequest{}, models.SuggestedLevels{})
	assert.True(t, res.Failed)
	assert.False(t, res.Extracted)
	assert.Equal(t, models.DefaultSuggested, res.Suggested)
}

func TestServiceWithRESTClientAllFail(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("unavailable"))
	}))
	defer srv.Close()

	client := NewClient(config.GeminiConfig{APIKey: "k", BaseURL: srv.URL, Models: testModels}, zaptest.NewLogger(t))
	res := newTestService(t, client).Advise(context.Background(), testRequest, models.SuggestedLevels{})

	assert.True(t, res.Failed)
	assert.Equal(t, "API Error (500): unavailable", res.Overview)
	assert.Equal(t, int32(3), hits.Load())
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "", Describe(nil))
	assert.Equal(t, "Error: request canceled before the advisory service answered.", Describe(context.Canceled))
	assert.Contains(t, Describe(context.DeadlineExceeded), "in time")
	assert.Equal(t, "Error: boom", Describe(errors.New("boom")))

	msg := Describe(&AttemptError{Model: "m", Err: errors.New("dial tcp: connection refused")})
	assert.True(t, strings.HasPrefix(msg, "Error: dial tcp: connection refused."))
}

func TestFirstSuccessNoModels(t *testing.T) {
	_, err := firstSuccess(context.Background(), zaptest.NewLogger(t), nil, nil)
	assert.Error(t, err)
}

func TestFirstSuccessStopsOnTerminalError(t *testing.T) {
	var tried []string
	terminal := errors.New("bad request body")
	_, err := firstSuccess(context.Background(), zaptest.NewLogger(t), testModels, func(ctx context.Context, model string) (string, error) {
		tried = append(tried, model)
		return "", terminal
	})
	require.ErrorIs(t, err, terminal)
	assert.Equal(t, []string{"model-a"}, tried)
}

func TestMockGenerator(t *testing.T) {
	req := models.AdvisoryRequest{
		Reading: models.SoilReading{Nitrogen: "45.9", Phosphorus: "50", Potassium: "abc"},
		State:   "Assam",
		Date:    "2024-02-02",
	}
	text, err := MockGenerator{}.Generate(context.Background(), req)
	require.NoError(t, err)

	levels, ok := ExtractSuggested(text)
	require.True(t, ok)
	assert.Equal(t, models.SuggestedLevels{N: "55", P: "55", K: "150", PH: "6.5", Moisture: "60"}, levels)
	assert.Contains(t, text, "in Assam for date 2024-02-02")
	assert.Contains(t, text, "mock data")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = MockGenerator{}.Generate(ctx, req)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewGenerator(t *testing.T) {
	logger := zaptest.NewLogger(t)

	gen, err := NewGenerator(context.Background(), config.GeminiConfig{Backend: config.BackendMock}, logger)
	require.NoError(t, err)
	assert.IsType(t, MockGenerator{}, gen)

	gen, err = NewGenerator(context.Background(), config.GeminiConfig{Backend: config.BackendREST, APIKey: "k"}, logger)
	require.NoError(t, err)
	assert.IsType(t, &Client{}, gen)

	_, err = NewGenerator(context.Background(), config.GeminiConfig{Backend: "carrier-pigeon"}, logger)
	assert.Error(t, err)
}

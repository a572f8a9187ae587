package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/learnflow/learnflow/internal/content"
	"github.com/learnflow/learnflow/internal/llm"
	"github.com/learnflow/learnflow/internal/logger"
)

const newtonPayload = `{
	"explanation": "F=ma relates force, mass, and acceleration.",
	"examples": ["Pushing a cart"],
	"videos": [{"title": "Intro", "url": "https://youtube.com/embed/abc"}],
	"quiz": [{"question": "What is F?", "options": ["Force", "Mass", "Time"], "correctAnswer": "Force"}]
}`

func newTestEngine(provider llm.Provider) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := content.NewService(provider, content.DefaultConfig())
	h := NewGenerateHandler(logger.NewNop(), svc)

	r := gin.New()
	r.POST("/api/v1/generate", h.Generate)
	return r
}

func postGenerate(t *testing.T, r *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/generate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGenerate_Success(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(newtonPayload)})
	r := newTestEngine(mock)

	w := postGenerate(t, r, `{"query": "Newton's second law"}`)

	require.Equal(t, http.StatusOK, w.Code)

	var pkg content.LearningPackage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pkg))
	assert.Equal(t, "F=ma relates force, mass, and acceleration.", pkg.Explanation)
	assert.Equal(t, []string{"Pushing a cart"}, pkg.Examples)
	require.Len(t, pkg.Videos, 1)
	assert.Equal(t, "https://youtube.com/embed/abc", pkg.Videos[0].URL)
	require.Len(t, pkg.Quiz, 1)
	assert.Equal(t, "Force", pkg.Quiz[0].CorrectAnswer)
}

func TestGenerate_MissingQuery(t *testing.T) {
	mock := llm.NewMockProvider()
	r := newTestEngine(mock)

	w := postGenerate(t, r, `{}`)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	// The provider must not be called for an invalid request body.
	assert.Zero(t, mock.CallCount())
}

func TestGenerate_ErrorMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "configuration error",
			err:        &llm.ErrConfiguration{Reason: "OPENROUTER_API_KEY is not set"},
			wantStatus: http.StatusInternalServerError,
			wantCode:   "not_configured",
		},
		{
			name:       "rate limit exhausted",
			err:        &llm.ErrRateLimitExhausted{Attempts: 5, Err: errors.New("429")},
			wantStatus: http.StatusBadGateway,
			wantCode:   "rate_limited",
		},
		{
			name:       "provider unavailable",
			err:        &llm.ErrProviderUnavailable{Err: errors.New("503")},
			wantStatus: http.StatusBadGateway,
			wantCode:   "provider_unavailable",
		},
		{
			name:       "malformed envelope",
			err:        &llm.ErrMalformedEnvelope{Err: errors.New("no choices")},
			wantStatus: http.StatusBadGateway,
			wantCode:   "malformed_envelope",
		},
		{
			name:       "invalid json",
			err:        &llm.ErrInvalidJSON{Content: json.RawMessage(`oops`), Err: errors.New("bad")},
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   "invalid_output",
		},
		{
			name:       "schema violation",
			err:        &llm.ErrSchemaViolation{Content: json.RawMessage(`{}`), Err: errors.New("missing quiz")},
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   "invalid_output",
		},
		{
			name:       "truncated response",
			err:        &llm.ErrMaxTokensExceeded{Content: json.RawMessage(`{"explanation":"Newto`)},
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   "truncated_output",
		},
		{
			name:       "unexpected error",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "generation_failed",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mock := llm.NewMockProvider(llm.MockResponse{Err: tc.err})
			r := newTestEngine(mock)

			w := postGenerate(t, r, `{"query": "anything"}`)

			assert.Equal(t, tc.wantStatus, w.Code)

			var envelope ErrorEnvelope
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
			assert.Equal(t, tc.wantCode, envelope.Error.Code)
			// Raw provider detail must not leak to the client.
			assert.NotContains(t, envelope.Error.Message, tc.err.Error())
		})
	}
}

func TestGenerate_BadQuizAnswerMapsTo422(t *testing.T) {
	payload := `{
		"explanation": "x",
		"examples": ["y"],
		"videos": [],
		"quiz": [{"question": "Q?", "options": ["A", "B"], "correctAnswer": "C"}]
	}`
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(payload)})
	r := newTestEngine(mock)

	w := postGenerate(t, r, `{"query": "anything"}`)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

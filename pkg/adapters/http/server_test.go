package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/ostia"
	"github.com/aretw0/ostia/pkg/adapters/memory"
	"github.com/aretw0/ostia/pkg/observability"
	"github.com/aretw0/ostia/pkg/session"
)

const binaryDocument = `{"document": {"name": "binary", "sample": [["ab","01"],["ba","10"],["aa","00"],["bb","11"]]}}`

func newTestHandler(t *testing.T, opts ...Option) http.Handler {
	t.Helper()
	h, err := NewHandler(ostia.New(), opts...)
	require.NoError(t, err)
	return h
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestGetSwagger(t *testing.T) {
	doc, err := GetSwagger()
	require.NoError(t, err)
	assert.Equal(t, "Ostia API", doc.Info.Title)
	assert.NotNil(t, doc.Paths.Value("/models/{id}/apply"))

	for _, name := range []string{"Pair", "TrainingSetDocument", "LearnRequest", "AppendRequest", "ApplyRequest", "ApplyResponse", "Model"} {
		assert.Contains(t, doc.Components.Schemas, name)
	}
	appendReq := doc.Components.Schemas["AppendRequest"]
	require.NotNil(t, appendReq.Value)
	assert.Equal(t, []string{"pairs"}, appendReq.Value.Required)
}

func TestAppendPairs_RejectsBodyWithoutPairs(t *testing.T) {
	h := newTestHandler(t)

	w := do(t, h, http.MethodPost, "/training-sets/binary/pairs", `{"separator": " "}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealthAndInfo(t *testing.T) {
	h := newTestHandler(t)

	w := do(t, h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(t, h, http.MethodGet, "/info", "")
	require.Equal(t, http.StatusOK, w.Code)
	info := decode[map[string]string](t, w)
	assert.Equal(t, "ostia-http", info["app"])
	assert.Equal(t, "0.1.0", info["api_version"])

	w = do(t, h, http.MethodGet, "/openapi.yaml", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "openapi: 3.0.3")
}

func TestLearnAndApply(t *testing.T) {
	h := newTestHandler(t)

	w := do(t, h, http.MethodPost, "/models", binaryDocument)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	model := decode[Model](t, w)
	assert.Equal(t, "binary", model.Name)
	assert.Equal(t, 1, model.States)
	assert.Equal(t, []Transition{
		{From: 0, Symbol: "a", Output: "0", To: 0},
		{From: 0, Symbol: "b", Output: "1", To: 0},
	}, model.Transitions)
	assert.Equal(t, map[string]string{"0": ""}, model.FinalOutputs)

	w = do(t, h, http.MethodPost, "/models/"+model.ID+"/apply", `{"words": ["abba", "bc"]}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode[ApplyResponse](t, w)
	require.Len(t, resp.Results, 2)
	require.NotNil(t, resp.Results[0].Output)
	assert.Equal(t, "0110", *resp.Results[0].Output)
	assert.Nil(t, resp.Results[1].Output)
	assert.Contains(t, resp.Results[1].Error, "cannot be read")

	w = do(t, h, http.MethodGet, "/models", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]ModelSummary](t, w), 1)

	w = do(t, h, http.MethodDelete, "/models/"+model.ID, "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = do(t, h, http.MethodGet, "/models/"+model.ID, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLearn_Errors(t *testing.T) {
	h := newTestHandler(t)

	tests := []struct {
		name string
		body string
		want int
	}{
		{"inconsistent sample", `{"document": {"sample": [["a","0"],["a","1"]]}}`, http.StatusUnprocessableEntity},
		{"alphabet violation", `{"document": {"input_alphabet": "a", "sample": [["b","0"]]}}`, http.StatusUnprocessableEntity},
		{"malformed pair", `{"document": {"sample": [["a"]]}}`, http.StatusBadRequest},
		{"nothing to learn", `{}`, http.StatusBadRequest},
		{"both sources", `{"training_set": "x", "document": {"sample": []}}`, http.StatusBadRequest},
		{"schema violation", `{"document": {"name": "missing sample"}}`, http.StatusBadRequest},
		{"by name without store", `{"training_set": "x"}`, http.StatusNotImplemented},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, h, http.MethodPost, "/models", tt.body)
			assert.Equal(t, tt.want, w.Code, w.Body.String())
			assert.Contains(t, decode[map[string]string](t, w), "error")
		})
	}
}

func TestModelLookupErrors(t *testing.T) {
	h := newTestHandler(t)

	w := do(t, h, http.MethodGet, "/models/"+uuid.NewString(), "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, h, http.MethodGet, "/models/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, h, http.MethodPost, "/models/"+uuid.NewString()+"/apply", `{"words": []}`)
	assert.Equal(t, http.StatusBadRequest, w.Code, "empty word list violates the schema")
}

func TestTrainingSets(t *testing.T) {
	sessions := session.NewManager(memory.NewStore())
	h := newTestHandler(t, WithSessions(sessions))

	w := do(t, h, http.MethodGet, "/training-sets", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[[]string](t, w))

	w = do(t, h, http.MethodPost, "/training-sets/binary/pairs", `{"pairs": [{"input": "ab", "output": "01"}, {"input": "aba", "output": "010"}]}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = do(t, h, http.MethodPost, "/training-sets/binary/pairs", `{"pairs": [{"input": "ab", "output": "11"}]}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(t, h, http.MethodGet, "/training-sets/binary", "")
	require.Equal(t, http.StatusOK, w.Code)
	doc := decode[map[string]any](t, w)
	assert.Equal(t, "binary", doc["name"])
	assert.Len(t, doc["sample"], 2)

	w = do(t, h, http.MethodPost, "/models", `{"training_set": "binary", "verify": true}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	model := decode[Model](t, w)
	assert.Equal(t, 2, model.States)

	w = do(t, h, http.MethodPost, "/models", `{"training_set": "missing"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, h, http.MethodDelete, "/training-sets/binary", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = do(t, h, http.MethodGet, "/training-sets/binary", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTrainingSets_MultiCharacterSymbols(t *testing.T) {
	h := newTestHandler(t, WithSessions(session.NewManager(memory.NewStore())))

	w := do(t, h, http.MethodPost, "/training-sets/words/pairs",
		`{"separator": " ", "pairs": [{"input": "one", "output": "un"}, {"input": "two", "output": "deux"}, {"input": "one two", "output": "un deux"}]}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = do(t, h, http.MethodPost, "/models", `{"training_set": "words"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	model := decode[Model](t, w)
	assert.Equal(t, " ", model.Separator)

	w = do(t, h, http.MethodPost, "/models/"+model.ID+"/apply", `{"words": ["two one two"]}`)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[ApplyResponse](t, w)
	require.NotNil(t, resp.Results[0].Output)
	assert.Equal(t, "deux un deux", *resp.Results[0].Output)
}

func TestTrainingSets_NotConfigured(t *testing.T) {
	h := newTestHandler(t)
	w := do(t, h, http.MethodGet, "/training-sets", "")
	assert.Equal(t, http.StatusNotImplemented, w.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	metrics := observability.NewMetrics()
	h, err := NewHandler(ostia.New(ostia.WithLifecycleHooks(metrics.Hooks())), WithMetricsHandler(metrics.Handler()))
	require.NoError(t, err)

	w := do(t, h, http.MethodPost, "/models", binaryDocument)
	require.Equal(t, http.StatusCreated, w.Code)

	w = do(t, h, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ostia_merge_steps_total")
}

func TestCORSPreflight(t *testing.T) {
	h := newTestHandler(t)
	w := do(t, h, http.MethodOptions, "/models", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

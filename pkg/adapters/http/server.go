// Package http exposes learning and rewriting over a JSON API described by
// the embedded openapi.yaml.
package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/aretw0/ostia"
	"github.com/aretw0/ostia/internal/validator"
	"github.com/aretw0/ostia/pkg/domain"
	"github.com/aretw0/ostia/pkg/dsl"
	"github.com/aretw0/ostia/pkg/ports"
	"github.com/aretw0/ostia/pkg/registry"
	"github.com/aretw0/ostia/pkg/session"
)

// Server implements ServerInterface.
type Server struct {
	Learner  ports.Learner
	Models   *registry.Registry
	Sessions *session.Manager
	Metrics  http.Handler
}

var _ ServerInterface = (*Server)(nil)

// Option configures the handler built by NewHandler.
type Option func(*Server)

// WithSessions enables the /training-sets endpoints and learning by name.
func WithSessions(m *session.Manager) Option {
	return func(s *Server) {
		s.Sessions = m
	}
}

// WithRegistry shares a model registry with other adapters.
func WithRegistry(r *registry.Registry) Option {
	return func(s *Server) {
		s.Models = r
	}
}

// WithMetricsHandler mounts h at /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.Metrics = h
	}
}

// NewHandler creates a new HTTP handler for the learner.
func NewHandler(learner ports.Learner, opts ...Option) (http.Handler, error) {
	server := &Server{Learner: learner, Models: registry.NewRegistry()}
	for _, opt := range opts {
		opt(server)
	}

	doc, err := GetSwagger()
	if err != nil {
		return nil, err
	}
	validate, err := validateRequests(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to build request validator: %w", err)
	}

	r := chi.NewRouter()
	r.Use(enableCORS, validate)

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		spec, err := rawSpec()
		if err != nil {
			http.Error(w, "Failed to load spec", http.StatusInternalServerError)
			slog.Error("Failed to load OpenAPI spec", "error", err)
			return
		}
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(spec)
	})
	if server.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", server.Metrics)
	}

	return HandlerFromMux(server, r), nil
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles GET /info.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	apiVersion := "unknown"
	if swagger, err := GetSwagger(); err == nil && swagger.Info != nil {
		apiVersion = swagger.Info.Version
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"app":         "ostia-http",
		"version":     strings.TrimSpace(ostia.Version),
		"api_version": apiVersion,
	})
}

// ListModels handles GET /models.
func (s *Server) ListModels(w http.ResponseWriter, r *http.Request) {
	models := s.Models.List()
	out := make([]ModelSummary, len(models))
	for i, m := range models {
		out[i] = summarize(m)
	}
	writeJSON(w, http.StatusOK, out)
}

// LearnModel handles POST /models.
func (s *Server) LearnModel(w http.ResponseWriter, r *http.Request) {
	var body LearnRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		slog.Warn("LearnModel: Invalid request body", "error", err)
		return
	}

	var set *domain.TrainingSet
	var err error
	switch {
	case body.Document != nil && body.TrainingSet != "":
		writeError(w, http.StatusBadRequest, errors.New("training_set and document are mutually exclusive"))
		return
	case body.Document != nil:
		set, err = body.Document.TrainingSet()
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
	case body.TrainingSet != "":
		if s.Sessions == nil {
			writeError(w, http.StatusNotImplemented, errors.New("no training store configured"))
			return
		}
		set, err = s.Sessions.Load(r.Context(), body.TrainingSet)
		if err != nil {
			writeError(w, statusFor(err), err)
			return
		}
	default:
		writeError(w, http.StatusBadRequest, errors.New("one of training_set or document is required"))
		return
	}

	t, err := s.Learner.Learn(*set)
	if err == nil && body.Verify {
		if verr := validator.VerifyTransducer(t, set.Sample); verr != nil {
			err = fmt.Errorf("%w: %w", errVerification, verr)
		}
	}
	if err != nil {
		writeError(w, statusFor(err), err)
		slog.Warn("LearnModel: learning failed", "training_set", set.Name, "error", err)
		return
	}

	m := s.Models.Register(*set, t)
	slog.Info("Model learned", "id", m.ID, "training_set", m.Name, "states", t.NumStates())
	writeJSON(w, http.StatusCreated, describe(m))
}

// GetModel handles GET /models/{id}.
func (s *Server) GetModel(w http.ResponseWriter, r *http.Request, id string) {
	m, err := s.model(id)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, describe(m))
}

// DeleteModel handles DELETE /models/{id}.
func (s *Server) DeleteModel(w http.ResponseWriter, r *http.Request, id string) {
	s.Models.Delete(id)
	w.WriteHeader(http.StatusNoContent)
}

// ApplyModel handles POST /models/{id}/apply. Words the model cannot read
// get a per-word error; the request itself still succeeds.
func (s *Server) ApplyModel(w http.ResponseWriter, r *http.Request, id string) {
	m, err := s.model(id)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	var body ApplyRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	sep := dsl.InferSeparator(m.TrainingSet)
	resp := ApplyResponse{Results: make([]ApplyResult, len(body.Words))}
	for i, word := range body.Words {
		resp.Results[i].Input = word
		out, err := m.Transducer.Apply(domain.SplitWord(word, sep))
		if err != nil {
			resp.Results[i].Error = err.Error()
			continue
		}
		joined := out.Join(sep)
		resp.Results[i].Output = &joined
	}
	writeJSON(w, http.StatusOK, resp)
}

// ListTrainingSets handles GET /training-sets.
func (s *Server) ListTrainingSets(w http.ResponseWriter, r *http.Request) {
	if !s.requireSessions(w) {
		return
	}
	names, err := s.Sessions.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	writeJSON(w, http.StatusOK, names)
}

// GetTrainingSet handles GET /training-sets/{name}.
func (s *Server) GetTrainingSet(w http.ResponseWriter, r *http.Request, name string) {
	if !s.requireSessions(w) {
		return
	}
	set, err := s.Sessions.Load(r.Context(), name)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, dsl.Encode(*set))
}

// DeleteTrainingSet handles DELETE /training-sets/{name}.
func (s *Server) DeleteTrainingSet(w http.ResponseWriter, r *http.Request, name string) {
	if !s.requireSessions(w) {
		return
	}
	if err := s.Sessions.Delete(r.Context(), name); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AppendPairs handles POST /training-sets/{name}/pairs.
func (s *Server) AppendPairs(w http.ResponseWriter, r *http.Request, name string) {
	if !s.requireSessions(w) {
		return
	}
	var body AppendRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	pairs := make([]domain.Pair, len(body.Pairs))
	for i, p := range body.Pairs {
		pairs[i] = domain.Pair{
			Input:  domain.SplitWord(p.Input, body.Separator),
			Output: domain.SplitWord(p.Output, body.Separator),
		}
	}
	set, err := s.Sessions.Append(r.Context(), name, pairs...)
	if err != nil {
		status := statusFor(err)
		if errors.Is(err, domain.ErrInconsistentSample) {
			status = http.StatusConflict
		}
		writeError(w, status, err)
		slog.Warn("AppendPairs failed", "training_set", name, "error", err)
		return
	}
	writeJSON(w, http.StatusOK, dsl.Encode(*set))
}

func (s *Server) model(id string) (*registry.Model, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: invalid model id %q", errBadRequest, id)
	}
	return s.Models.Get(id)
}

func (s *Server) requireSessions(w http.ResponseWriter) bool {
	if s.Sessions == nil {
		writeError(w, http.StatusNotImplemented, errors.New("no training store configured"))
		return false
	}
	return true
}

var (
	errBadRequest   = errors.New("bad request")
	errVerification = errors.New("learned model failed verification")
)

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errBadRequest), errors.Is(err, dsl.ErrMalformedDocument):
		return http.StatusBadRequest
	case errors.Is(err, registry.ErrModelNotFound), errors.Is(err, domain.ErrTrainingSetNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInconsistentSample),
		errors.Is(err, domain.ErrAlphabetViolation),
		errors.Is(err, errVerification):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func summarize(m *registry.Model) ModelSummary {
	return ModelSummary{
		ID:        m.ID,
		Name:      m.Name,
		States:    m.Transducer.NumStates(),
		CreatedAt: m.CreatedAt,
	}
}

func describe(m *registry.Model) Model {
	t := m.Transducer
	sep := dsl.InferSeparator(m.TrainingSet)
	out := Model{
		ModelSummary:   summarize(m),
		Separator:      sep,
		InitialOutput:  t.InitialOutput.Join(sep),
		InputAlphabet:  t.InputAlphabet.Strings(),
		OutputAlphabet: t.OutputAlphabet.Strings(),
		Transitions:    []Transition{},
		FinalOutputs:   map[string]string{},
	}
	for _, tr := range t.Transitions() {
		out.Transitions = append(out.Transitions, Transition{
			From:   int(tr.From),
			Symbol: string(tr.Symbol),
			Output: tr.Output.Join(sep),
			To:     int(tr.To),
		})
	}
	for _, id := range t.States() {
		if w, ok := t.Final(id).Word(); ok {
			out.FinalOutputs[strconv.Itoa(int(id))] = w.Join(sep)
		}
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Response encode failed", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

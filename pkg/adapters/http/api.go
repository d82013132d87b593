package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"

	"github.com/aretw0/ostia/pkg/dsl"
)

// Pair is one input/output observation, with symbols joined by the
// request's separator.
type Pair struct {
	Input  string `json:"input"`
	Output string `json:"output"`
}

// LearnRequest names a stored training set or carries one inline.
type LearnRequest struct {
	TrainingSet string        `json:"training_set,omitempty"`
	Document    *dsl.Document `json:"document,omitempty"`
	Verify      bool          `json:"verify,omitempty"`
}

// Transition is one edge of a learned transducer.
type Transition struct {
	From   int    `json:"from"`
	Symbol string `json:"symbol"`
	Output string `json:"output"`
	To     int    `json:"to"`
}

// ModelSummary is the listing form of a learned model.
type ModelSummary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name,omitempty"`
	States    int       `json:"states"`
	CreatedAt time.Time `json:"created_at"`
}

// Model describes a learned transducer. Final outputs are keyed by state id;
// states without a final output are omitted.
type Model struct {
	ModelSummary
	Separator      string            `json:"separator,omitempty"`
	InitialOutput  string            `json:"initial_output"`
	InputAlphabet  []string          `json:"input_alphabet"`
	OutputAlphabet []string          `json:"output_alphabet"`
	Transitions    []Transition      `json:"transitions"`
	FinalOutputs   map[string]string `json:"final_outputs"`
}

type ApplyRequest struct {
	Words []string `json:"words"`
}

type ApplyResult struct {
	Input  string  `json:"input"`
	Output *string `json:"output,omitempty"`
	Error  string  `json:"error,omitempty"`
}

type ApplyResponse struct {
	Results []ApplyResult `json:"results"`
}

// AppendRequest adds pairs to a named training set.
type AppendRequest struct {
	Separator string `json:"separator,omitempty"`
	Pairs     []Pair `json:"pairs"`
}

// ServerInterface lists the operations of openapi.yaml.
type ServerInterface interface {
	GetHealth(w http.ResponseWriter, r *http.Request)
	GetInfo(w http.ResponseWriter, r *http.Request)
	ListModels(w http.ResponseWriter, r *http.Request)
	LearnModel(w http.ResponseWriter, r *http.Request)
	GetModel(w http.ResponseWriter, r *http.Request, id string)
	DeleteModel(w http.ResponseWriter, r *http.Request, id string)
	ApplyModel(w http.ResponseWriter, r *http.Request, id string)
	ListTrainingSets(w http.ResponseWriter, r *http.Request)
	GetTrainingSet(w http.ResponseWriter, r *http.Request, name string)
	DeleteTrainingSet(w http.ResponseWriter, r *http.Request, name string)
	AppendPairs(w http.ResponseWriter, r *http.Request, name string)
}

// HandlerFromMux registers the operations of si on r.
func HandlerFromMux(si ServerInterface, r chi.Router) http.Handler {
	r.Get("/health", si.GetHealth)
	r.Get("/info", si.GetInfo)

	r.Get("/models", si.ListModels)
	r.Post("/models", si.LearnModel)
	r.Get("/models/{id}", withPathParam("id", si.GetModel))
	r.Delete("/models/{id}", withPathParam("id", si.DeleteModel))
	r.Post("/models/{id}/apply", withPathParam("id", si.ApplyModel))

	r.Get("/training-sets", si.ListTrainingSets)
	r.Get("/training-sets/{name}", withPathParam("name", si.GetTrainingSet))
	r.Delete("/training-sets/{name}", withPathParam("name", si.DeleteTrainingSet))
	r.Post("/training-sets/{name}/pairs", withPathParam("name", si.AppendPairs))
	return r
}

// withPathParam binds a simple-style path parameter before calling fn.
func withPathParam(name string, fn func(http.ResponseWriter, *http.Request, string)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var value string
		err := runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), &value,
			runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("invalid format for parameter %s: %w", name, err))
			return
		}
		fn(w, r, value)
	}
}

// Package mcp exposes the learner as Model Context Protocol tools, so that
// agents can learn a rewrite from examples and then apply it.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aretw0/ostia"
	"github.com/aretw0/ostia/internal/presentation/graph"
	"github.com/aretw0/ostia/pkg/domain"
	"github.com/aretw0/ostia/pkg/dsl"
	"github.com/aretw0/ostia/pkg/ports"
	"github.com/aretw0/ostia/pkg/registry"
)

const modelsURI = "ostia://models"

// Pair is one example given to the learn tool.
type Pair struct {
	Input  string `json:"input"`
	Output string `json:"output"`
}

// LearnArgs are the arguments of the learn tool. Either TrainingSet or
// Pairs must be set.
type LearnArgs struct {
	TrainingSet    string   `json:"training_set,omitempty"`
	Pairs          []Pair   `json:"pairs,omitempty"`
	Separator      string   `json:"separator,omitempty"`
	InputAlphabet  []string `json:"input_alphabet,omitempty"`
	OutputAlphabet []string `json:"output_alphabet,omitempty"`
}

// LearnResult describes a freshly learned model.
type LearnResult struct {
	ModelID       string   `json:"model_id" jsonschema_description:"Identifier to pass to apply and describe_model"`
	Name          string   `json:"name,omitempty"`
	States        int      `json:"states" jsonschema_description:"Number of states of the learned transducer"`
	InitialOutput string   `json:"initial_output"`
	Transitions   []string `json:"transitions" jsonschema_description:"Edges as 'from -symbol:output-> to'"`
}

type ApplyArgs struct {
	ModelID string   `json:"model_id"`
	Words   []string `json:"words"`
}

type ApplyResult struct {
	Input  string  `json:"input"`
	Output *string `json:"output,omitempty"`
	Error  string  `json:"error,omitempty"`
}

// ApplyResponse holds one result per word, in order.
type ApplyResponse struct {
	Results []ApplyResult `json:"results"`
}

// Server wraps the learner and exposes it as an MCP Server.
type Server struct {
	learner   ports.Learner
	loader    ports.TrainingLoader
	models    *registry.Registry
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance. The loader is optional; without
// it the learn tool only accepts inline pairs. A nil registry gets a private one.
func NewServer(learner ports.Learner, loader ports.TrainingLoader, models *registry.Registry) *Server {
	if models == nil {
		models = registry.NewRegistry()
	}
	s := &Server{
		learner:   learner,
		loader:    loader,
		models:    models,
		mcpServer: server.NewMCPServer("ostia-mcp", strings.TrimSpace(ostia.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying protocol server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves the MCP protocol over SSE until ctx is cancelled.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		slog.Info("Shutdown signal received, shutting down MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	pairSchema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"input":  map[string]any{"type": "string"},
			"output": map[string]any{"type": "string"},
		},
		"required": []string{"input", "output"},
	}

	learnTool := mcp.NewTool("learn",
		mcp.WithDescription("Learn a deterministic rewrite from input/output examples. Returns a model id."),
		mcp.WithString("training_set", mcp.Description("Name of a stored training set (alternative to pairs)")),
		mcp.WithArray("pairs", mcp.Description("Examples to learn from"), mcp.Items(pairSchema)),
		mcp.WithString("separator", mcp.Description("Symbol separator inside words; empty means one symbol per character")),
		mcp.WithArray("input_alphabet", mcp.WithStringItems(), mcp.Description("Input symbols (inferred when omitted)")),
		mcp.WithArray("output_alphabet", mcp.WithStringItems(), mcp.Description("Output symbols (inferred when omitted)")),
		mcp.WithOutputSchema[LearnResult](),
	)
	s.mcpServer.AddTool(learnTool, mcp.NewStructuredToolHandler(s.handleLearn))

	applyTool := mcp.NewTool("apply",
		mcp.WithDescription("Rewrite words with a learned model."),
		mcp.WithString("model_id", mcp.Required(), mcp.Description("Model id returned by learn")),
		mcp.WithArray("words", mcp.Required(), mcp.WithStringItems(), mcp.Description("Words to rewrite")),
		mcp.WithOutputSchema[ApplyResponse](),
	)
	s.mcpServer.AddTool(applyTool, mcp.NewStructuredToolHandler(s.handleApply))

	s.mcpServer.AddTool(mcp.NewTool("describe_model",
		mcp.WithDescription("Describe a learned model as a state listing or a Mermaid diagram."),
		mcp.WithString("model_id", mcp.Required(), mcp.Description("Model id returned by learn")),
		mcp.WithString("format", mcp.Enum("text", "mermaid"), mcp.Description("Output format (default text)")),
	), s.handleDescribe)

	if s.loader != nil {
		s.mcpServer.AddTool(mcp.NewTool("list_training_sets",
			mcp.WithDescription("List the names of stored training sets."),
		), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			names, err := s.loader.List(ctx)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("list failed: %v", err)), nil
			}
			jsonBytes, _ := json.Marshal(names)
			return mcp.NewToolResultText(string(jsonBytes)), nil
		})
	}
}

func (s *Server) handleLearn(ctx context.Context, request mcp.CallToolRequest, args LearnArgs) (LearnResult, error) {
	set, err := s.trainingSet(ctx, args)
	if err != nil {
		return LearnResult{}, err
	}

	t, err := s.learner.Learn(*set)
	if err != nil {
		slog.Warn("MCP Learn: learning failed", "training_set", set.Name, "error", err)
		return LearnResult{}, fmt.Errorf("learn failed: %w", err)
	}

	m := s.models.Register(*set, t)
	sep := dsl.InferSeparator(*set)
	res := LearnResult{
		ModelID:       m.ID,
		Name:          m.Name,
		States:        t.NumStates(),
		InitialOutput: t.InitialOutput.Join(sep),
		Transitions:   []string{},
	}
	for _, tr := range t.Transitions() {
		res.Transitions = append(res.Transitions,
			fmt.Sprintf("%d -%s:%s-> %d", tr.From, tr.Symbol, tr.Output.Join(sep), tr.To))
	}
	return res, nil
}

func (s *Server) trainingSet(ctx context.Context, args LearnArgs) (*domain.TrainingSet, error) {
	switch {
	case args.TrainingSet != "" && len(args.Pairs) > 0:
		return nil, errors.New("training_set and pairs are mutually exclusive")
	case args.TrainingSet != "":
		if s.loader == nil {
			return nil, errors.New("no training store configured")
		}
		return s.loader.Load(ctx, args.TrainingSet)
	case len(args.Pairs) == 0:
		return nil, errors.New("one of training_set or pairs is required")
	}

	set := &domain.TrainingSet{
		InputAlphabet:  domain.ParseAlphabet(args.InputAlphabet...),
		OutputAlphabet: domain.ParseAlphabet(args.OutputAlphabet...),
	}
	for _, p := range args.Pairs {
		set.Sample = append(set.Sample, domain.Pair{
			Input:  domain.SplitWord(p.Input, args.Separator),
			Output: domain.SplitWord(p.Output, args.Separator),
		})
	}
	return set, nil
}

func (s *Server) handleApply(ctx context.Context, request mcp.CallToolRequest, args ApplyArgs) (ApplyResponse, error) {
	m, err := s.models.Get(args.ModelID)
	if err != nil {
		return ApplyResponse{}, err
	}

	sep := dsl.InferSeparator(m.TrainingSet)
	resp := ApplyResponse{Results: make([]ApplyResult, len(args.Words))}
	for i, word := range args.Words {
		resp.Results[i].Input = word
		out, err := m.Transducer.Apply(domain.SplitWord(word, sep))
		if err != nil {
			resp.Results[i].Error = err.Error()
			continue
		}
		joined := out.Join(sep)
		resp.Results[i].Output = &joined
	}
	return resp, nil
}

func (s *Server) handleDescribe(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("model_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	m, err := s.models.Get(id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	switch format := request.GetString("format", "text"); format {
	case "text":
		return mcp.NewToolResultText(m.Transducer.String()), nil
	case "mermaid":
		return mcp.NewToolResultText(graph.GenerateMermaid(m.Transducer, nil)), nil
	default:
		return mcp.NewToolResultError(fmt.Sprintf("unknown format %q", format)), nil
	}
}

type modelListing struct {
	ID        string    `json:"id"`
	Name      string    `json:"name,omitempty"`
	States    int       `json:"states"`
	CreatedAt time.Time `json:"created_at"`
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(modelsURI, "Learned models",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		models := s.models.List()
		out := make([]modelListing, len(models))
		for i, m := range models {
			out[i] = modelListing{ID: m.ID, Name: m.Name, States: m.Transducer.NumStates(), CreatedAt: m.CreatedAt}
		}
		jsonBytes, err := json.Marshal(out)
		if err != nil {
			return nil, fmt.Errorf("failed to encode models: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      modelsURI,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}

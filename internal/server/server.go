// Package server implements the HTTP and JSON-RPC surface of the
// scalar root-finding service.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/copyleftdev/ROOTR/internal/config"
	"github.com/copyleftdev/ROOTR/internal/expr"
	"github.com/copyleftdev/ROOTR/internal/metrics"
	"github.com/copyleftdev/ROOTR/internal/rootfind"
)

// Server dispatches solve requests onto the rootfind library. A solve
// is synchronous: its cost is bounded by the iteration cap, so there
// is no job state to manage.
type Server struct {
	cfg *config.Config
	log *zap.Logger
}

// NewServer creates a server with the given config and logger.
func NewServer(cfg *config.Config, log *zap.Logger) *Server {
	return &Server{cfg: cfg, log: log}
}

// RegisterRoutes mounts the service routes on r.
func (s *Server) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/solve", s.handleSolve)
		r.Get("/methods", s.handleMethods)
	})

	// JSON-RPC 2.0 endpoint
	r.Post("/rpc", s.handleJSONRPC)
}

// SolveRequest is the payload of a solve call. Lower and Upper are the
// bracket for the bracketing methods and the validity fence for the
// open methods. Guess defaults to the interval midpoint when omitted.
type SolveRequest struct {
	Method        string   `json:"method"`
	Function      string   `json:"function"`
	Derivative    string   `json:"derivative,omitempty"`
	Lower         float64  `json:"lower"`
	Upper         float64  `json:"upper"`
	Guess         *float64 `json:"guess,omitempty"`
	Tolerance     float64  `json:"tolerance,omitempty"`
	MaxIterations int      `json:"max_iterations,omitempty"`
	OnExhaustion  string   `json:"on_exhaustion,omitempty"`
}

// SolveResponse reports the outcome of a solve. Error is set when the
// method failed; the remaining fields are still populated with the
// method's final state.
type SolveResponse struct {
	ID         string  `json:"id"`
	Method     string  `json:"method"`
	Root       float64 `json:"root"`
	Converged  bool    `json:"converged"`
	Iterations int     `json:"iterations"`
	FuncEvals  int     `json:"func_evals"`
	Error      string  `json:"error,omitempty"`
}

// MethodInfo describes one root-finding method for discovery.
type MethodInfo struct {
	Name               string `json:"name"`
	Kind               string `json:"kind"`
	RequiresDerivative bool   `json:"requires_derivative"`
	AcceptsGuess       bool   `json:"accepts_guess"`
}

var methodCatalog = []MethodInfo{
	{Name: "bisection", Kind: "bracketing"},
	{Name: "regula_falsi", Kind: "bracketing"},
	{Name: "newton_raphson", Kind: "open", RequiresDerivative: true, AcceptsGuess: true},
	{Name: "secant", Kind: "open", AcceptsGuess: true},
}

// runSolve validates req, runs the requested method, and records
// metrics. A returned error is a request problem (bad method, bad
// expression); solver failures are reported inside the response.
func (s *Server) runSolve(req SolveRequest) (SolveResponse, error) {
	if req.Function == "" {
		return SolveResponse{}, fmt.Errorf("function is required")
	}
	if !(req.Lower < req.Upper) {
		return SolveResponse{}, fmt.Errorf("lower must be less than upper, got [%v, %v]", req.Lower, req.Upper)
	}

	f, err := expr.Compile(req.Function)
	if err != nil {
		return SolveResponse{}, err
	}

	settings, err := s.settings(req)
	if err != nil {
		return SolveResponse{}, err
	}

	guess := (req.Lower + req.Upper) / 2
	if req.Guess != nil {
		guess = *req.Guess
	}

	var (
		res      rootfind.Result
		solveErr error
	)
	start := time.Now()
	switch req.Method {
	case "bisection":
		res, solveErr = rootfind.Bisection(f, req.Lower, req.Upper, settings)
	case "regula_falsi":
		res, solveErr = rootfind.RegulaFalsi(f, req.Lower, req.Upper, settings)
	case "newton_raphson":
		if req.Derivative == "" {
			return SolveResponse{}, fmt.Errorf("newton_raphson requires a derivative expression")
		}
		g, err := expr.Compile(req.Derivative)
		if err != nil {
			return SolveResponse{}, err
		}
		res, solveErr = rootfind.NewtonRaphson(f, g, req.Lower, req.Upper, guess, settings)
	case "secant":
		res, solveErr = rootfind.Secant(f, req.Lower, req.Upper, guess, settings)
	default:
		return SolveResponse{}, fmt.Errorf("unknown method %q", req.Method)
	}
	elapsed := time.Since(start)

	outcome := outcomeLabel(res, solveErr)
	metrics.ObserveSolve(req.Method, outcome, res.Iterations, elapsed)

	resp := SolveResponse{
		ID:         uuid.NewString(),
		Method:     req.Method,
		Root:       res.Root,
		Converged:  res.Converged,
		Iterations: res.Iterations,
		FuncEvals:  res.FuncEvals,
	}
	if solveErr != nil {
		resp.Error = solveErr.Error()
	}
	// NaN and Inf are not representable in JSON.
	if math.IsNaN(resp.Root) || math.IsInf(resp.Root, 0) {
		resp.Root = 0
	}

	s.log.Info("solve completed",
		zap.String("id", resp.ID),
		zap.String("method", req.Method),
		zap.String("outcome", outcome),
		zap.Int("iterations", res.Iterations),
		zap.Int("func_evals", res.FuncEvals),
		zap.Duration("elapsed", elapsed),
	)

	return resp, nil
}

// settings derives per-request solver settings from the configured
// defaults.
func (s *Server) settings(req SolveRequest) (*rootfind.Settings, error) {
	settings := s.cfg.SolverSettings()
	if req.Tolerance > 0 {
		settings.Tolerance = req.Tolerance
	}
	if req.MaxIterations > 0 {
		settings.MaxIterations = req.MaxIterations
	}
	if req.OnExhaustion != "" {
		policy, err := config.ParsePolicy(req.OnExhaustion)
		if err != nil {
			return nil, err
		}
		settings.OnExhaustion = policy
	}
	return settings, nil
}

// outcomeLabel classifies a solve result for metrics and logs.
func outcomeLabel(res rootfind.Result, err error) string {
	switch {
	case err == nil && res.Converged:
		return "converged"
	case err == nil:
		return "best_effort"
	case errors.Is(err, rootfind.ErrNoSignChange):
		return "no_sign_change"
	case errors.Is(err, rootfind.ErrStalled):
		return "stalled"
	case errors.Is(err, rootfind.ErrDerivativeVanished):
		return "derivative_vanished"
	case errors.Is(err, rootfind.ErrOutOfBounds):
		return "out_of_bounds"
	case errors.Is(err, rootfind.ErrIterationLimit):
		return "iteration_limit"
	default:
		return "error"
	}
}

// handleSolve handles POST /api/v1/solve.
func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	var req SolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	resp, err := s.runSolve(req)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, resp)
}

// handleMethods handles GET /api/v1/methods.
func (s *Server) handleMethods(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]interface{}{"methods": methodCatalog})
}

// handleJSONRPC handles JSON-RPC 2.0 requests on POST /rpc.
func (s *Server) handleJSONRPC(w http.ResponseWriter, r *http.Request) {
	var request struct {
		JSONRPC string            `json:"jsonrpc"`
		ID      interface{}       `json:"id"`
		Method  string            `json:"method"`
		Params  []json.RawMessage `json:"params,omitempty"`
	}

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		s.respondRPCError(w, -32700, "Parse error", nil)
		return
	}
	if request.JSONRPC != "2.0" {
		s.respondRPCError(w, -32600, "Invalid Request", request.ID)
		return
	}

	var result interface{}
	switch request.Method {
	case "solver.solve":
		if len(request.Params) == 0 {
			s.respondRPCError(w, -32602, "Invalid params", request.ID)
			return
		}
		var req SolveRequest
		if err := json.Unmarshal(request.Params[0], &req); err != nil {
			s.respondRPCError(w, -32602, "Invalid params", request.ID)
			return
		}
		resp, err := s.runSolve(req)
		if err != nil {
			s.respondRPCError(w, -32000, err.Error(), request.ID)
			return
		}
		result = resp
	case "solver.methods":
		result = methodCatalog
	default:
		s.respondRPCError(w, -32601, "Method not found", request.ID)
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"jsonrpc": "2.0",
		"id":      request.ID,
		"result":  result,
	})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.log.Error("encode response", zap.Error(err))
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}

// respondRPCError sends a JSON-RPC 2.0 error response. JSON-RPC
// failures ride on HTTP 200; the error object carries the code.
func (s *Server) respondRPCError(w http.ResponseWriter, code int, message string, id interface{}) {
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"jsonrpc": "2.0",
		"id":      id,
		"error":   map[string]interface{}{"code": code, "message": message},
	})
}

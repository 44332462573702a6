package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/copyleftdev/ROOTR/internal/config"
)

func testServer(t *testing.T) (*Server, chi.Router) {
	t.Helper()

	cfg := &config.Config{}
	cfg.Solver.Tolerance = 1e-6
	cfg.Solver.MaxIterations = 1_000_000
	cfg.Solver.OnExhaustion = "default"

	srv := NewServer(cfg, zap.NewNop())
	r := chi.NewRouter()
	srv.RegisterRoutes(r)
	return srv, r
}

func postJSON(t *testing.T, r chi.Router, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	data, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestSolveBisection(t *testing.T) {
	_, r := testServer(t)

	rr := postJSON(t, r, "/api/v1/solve", SolveRequest{
		Method:   "bisection",
		Function: "x*x - 2",
		Lower:    0,
		Upper:    2,
	})
	require.Equal(t, http.StatusOK, rr.Code)

	var resp SolveResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.True(t, resp.Converged)
	assert.InDelta(t, 1.41421356, resp.Root, 1e-6)
	assert.Empty(t, resp.Error)
	assert.NotEmpty(t, resp.ID)
	assert.Greater(t, resp.FuncEvals, 2)
}

func TestSolveNewtonRaphson(t *testing.T) {
	_, r := testServer(t)

	guess := 1.5
	rr := postJSON(t, r, "/api/v1/solve", SolveRequest{
		Method:     "newton_raphson",
		Function:   "pow(x, 3) - x - 2",
		Derivative: "3*x*x - 1",
		Lower:      1,
		Upper:      2,
		Guess:      &guess,
	})
	require.Equal(t, http.StatusOK, rr.Code)

	var resp SolveResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.True(t, resp.Converged)
	assert.InDelta(t, 1.52137970, resp.Root, 1e-6)
}

func TestSolveReportsSolverFailure(t *testing.T) {
	_, r := testServer(t)

	// x^2 + 1 has no real root: the solver fails, but the request is
	// well-formed, so the HTTP status is still 200.
	rr := postJSON(t, r, "/api/v1/solve", SolveRequest{
		Method:   "bisection",
		Function: "x*x + 1",
		Lower:    -1,
		Upper:    1,
	})
	require.Equal(t, http.StatusOK, rr.Code)

	var resp SolveResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.False(t, resp.Converged)
	assert.Contains(t, resp.Error, "no sign change")
	assert.Equal(t, 2, resp.FuncEvals)
}

func TestSolveRequestValidation(t *testing.T) {
	_, r := testServer(t)

	tests := []struct {
		name string
		req  SolveRequest
	}{
		{"unknown method", SolveRequest{Method: "halley", Function: "x", Lower: -1, Upper: 1}},
		{"missing function", SolveRequest{Method: "bisection", Lower: -1, Upper: 1}},
		{"bad expression", SolveRequest{Method: "bisection", Function: "x +* 2", Lower: -1, Upper: 1}},
		{"inverted interval", SolveRequest{Method: "bisection", Function: "x", Lower: 1, Upper: -1}},
		{"newton without derivative", SolveRequest{Method: "newton_raphson", Function: "x*x - 2", Lower: 0, Upper: 2}},
		{"bad policy", SolveRequest{Method: "bisection", Function: "x", Lower: -1, Upper: 1, OnExhaustion: "retry"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := postJSON(t, r, "/api/v1/solve", tt.req)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
		})
	}
}

func TestMethodsEndpoint(t *testing.T) {
	_, r := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/methods", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var body struct {
		Methods []MethodInfo `json:"methods"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	assert.Len(t, body.Methods, 4)

	byName := map[string]MethodInfo{}
	for _, m := range body.Methods {
		byName[m.Name] = m
	}
	assert.True(t, byName["newton_raphson"].RequiresDerivative)
	assert.Equal(t, "bracketing", byName["bisection"].Kind)
}

func TestJSONRPCSolve(t *testing.T) {
	_, r := testServer(t)

	rr := postJSON(t, r, "/rpc", map[string]interface{}{
		"jsonrpc": "2.0",
		"id":      1,
		"method":  "solver.solve",
		"params": []interface{}{map[string]interface{}{
			"method":   "secant",
			"function": "cos(x) - x",
			"lower":    0,
			"upper":    1,
			"guess":    0.5,
		}},
	})
	require.Equal(t, http.StatusOK, rr.Code)

	var response struct {
		Result SolveResponse          `json:"result"`
		Error  map[string]interface{} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&response))
	require.Nil(t, response.Error)
	assert.True(t, response.Result.Converged)
	assert.InDelta(t, 0.73908513, response.Result.Root, 1e-6)
}

func TestJSONRPCErrors(t *testing.T) {
	_, r := testServer(t)

	tests := []struct {
		name     string
		body     map[string]interface{}
		wantCode float64
	}{
		{
			"wrong version",
			map[string]interface{}{"jsonrpc": "1.0", "id": 1, "method": "solver.methods"},
			-32600,
		},
		{
			"unknown method",
			map[string]interface{}{"jsonrpc": "2.0", "id": 1, "method": "solver.destroy"},
			-32601,
		},
		{
			"missing params",
			map[string]interface{}{"jsonrpc": "2.0", "id": 1, "method": "solver.solve"},
			-32602,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := postJSON(t, r, "/rpc", tt.body)
			require.Equal(t, http.StatusOK, rr.Code)

			var response map[string]interface{}
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&response))
			errObj, ok := response["error"].(map[string]interface{})
			require.True(t, ok, "expected an error object")
			assert.Equal(t, tt.wantCode, errObj["code"])
		})
	}
}

// Package solve exposes the solvers, the comparison report and the solution
// history over HTTP.
package solve

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/kilianp07/transport/core/model"
	"github.com/kilianp07/transport/core/transport"
	"github.com/kilianp07/transport/core/transport/history"
)

// maxBody bounds the size of a problem document.
const maxBody = 8 << 20

// Service is the part of transport.Manager the handlers use.
type Service interface {
	Solve(ctx context.Context, method model.Method, p model.Problem) (model.Solution, error)
	Compare(ctx context.Context, p model.Problem, withReference bool) (model.Comparison, error)
	Store() history.Store
	ClearHistory()
}

// Options configures the handlers.
type Options struct {
	// Token enables bearer authentication when non-empty.
	Token string
	// DefaultMethod is used when the method query parameter is absent.
	DefaultMethod model.Method
	// Reference attaches the LP optimum to comparisons unless the request
	// sets reference explicitly.
	Reference bool
}

// errorBody is written for every failed request.
type errorBody struct {
	Error  string   `json:"error"`
	Reason string   `json:"reason,omitempty"`
	Supply *float64 `json:"supply,omitempty"`
	Demand *float64 `json:"demand,omitempty"`
}

// Register mounts every handler on mux.
func Register(mux *http.ServeMux, svc Service, o Options) {
	mux.Handle("/api/solve", NewSolveHandler(svc, o))
	mux.Handle("/api/compare", NewCompareHandler(svc, o))
	mux.Handle("/api/history", NewHistoryHandler(svc, o.Token))
}

// NewSolveHandler serves POST /api/solve?method=<key>. The body is a problem
// document; the response is the solution.
func NewSolveHandler(svc Service, o Options) http.Handler {
	return requireToken(o.Token, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		method := o.DefaultMethod
		if s := r.URL.Query().Get("method"); s != "" {
			m, err := model.ParseMethod(s)
			if err != nil {
				writeError(w, err)
				return
			}
			method = m
		}
		p, ok := decodeProblem(w, r)
		if !ok {
			return
		}
		sol, err := svc.Solve(r.Context(), method, p)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, sol)
	}))
}

// NewCompareHandler serves POST /api/compare?reference=<bool>.
func NewCompareHandler(svc Service, o Options) http.Handler {
	return requireToken(o.Token, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		withRef := o.Reference
		if s := r.URL.Query().Get("reference"); s != "" {
			v, err := strconv.ParseBool(s)
			if err != nil {
				http.Error(w, "invalid reference flag", http.StatusBadRequest)
				return
			}
			withRef = v
		}
		p, ok := decodeProblem(w, r)
		if !ok {
			return
		}
		cmp, err := svc.Compare(r.Context(), p, withRef)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, cmp)
	}))
}

func decodeProblem(w http.ResponseWriter, r *http.Request) (model.Problem, bool) {
	var p model.Problem
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid problem: " + err.Error()})
		return model.Problem{}, false
	}
	return p, true
}

func requireToken(token string, next http.Handler) http.Handler {
	if token == "" {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+token {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// writeError maps validation and selector errors to 400, everything else to 500.
func writeError(w http.ResponseWriter, err error) {
	body := errorBody{Error: err.Error()}
	status := http.StatusInternalServerError
	if reason := transport.Reason(err); reason != "other" {
		body.Reason = reason
		status = http.StatusBadRequest
	}
	var be *transport.BalanceError
	if errors.As(err, &be) {
		body.Supply, body.Demand = &be.Supply, &be.Demand
	}
	if errors.Is(err, model.ErrUnknownMethod) {
		body.Reason = "unknown_method"
		status = http.StatusBadRequest
	}
	if errors.Is(err, errInvalidQuery) {
		body.Reason = "invalid_query"
		status = http.StatusBadRequest
	}
	writeJSON(w, status, body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

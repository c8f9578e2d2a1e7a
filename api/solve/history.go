package solve

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/kilianp07/transport/core/model"
	"github.com/kilianp07/transport/core/transport/history"
)

// NewHistoryHandler serves GET /api/history (newest first) and DELETE
// /api/history. GET accepts start and end (RFC3339), method and limit.
func NewHistoryHandler(svc Service, token string) http.Handler {
	return requireToken(token, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		store := svc.Store()
		if store == nil {
			http.Error(w, "history disabled", http.StatusNotFound)
			return
		}
		switch r.Method {
		case http.MethodGet:
			q, err := parseQuery(r)
			if err != nil {
				writeError(w, err)
				return
			}
			records, err := store.Query(r.Context(), q)
			if err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			if records == nil {
				records = []history.Record{}
			}
			writeJSON(w, http.StatusOK, records)
		case http.MethodDelete:
			if err := store.Clear(r.Context()); err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			svc.ClearHistory()
			w.WriteHeader(http.StatusNoContent)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	}))
}

// errInvalidQuery marks a malformed history query parameter.
var errInvalidQuery = errors.New("invalid query")

func parseQuery(r *http.Request) (history.Query, error) {
	v := r.URL.Query()
	q := history.Query{NewestFirst: true}
	if s := v.Get("start"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return q, fmt.Errorf("%w: start %q is not RFC3339", errInvalidQuery, s)
		}
		q.Start = t
	}
	if s := v.Get("end"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return q, fmt.Errorf("%w: end %q is not RFC3339", errInvalidQuery, s)
		}
		q.End = t
	}
	if s := v.Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			return q, fmt.Errorf("%w: limit %q must be a positive integer", errInvalidQuery, s)
		}
		q.Limit = n
	}
	if s := v.Get("method"); s != "" {
		m, err := model.ParseMethod(s)
		if err != nil {
			return q, err
		}
		q = q.ForMethod(m)
	}
	return q, nil
}

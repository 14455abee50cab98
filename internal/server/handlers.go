package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/zephyrtronium/gvalop"
)

// FilterRequest is the body of POST /v1/filter.
type FilterRequest struct {
	Expression string   `json:"expression"`
	Texts      []string `json:"texts"`
}

// FilterResponse reports for each text whether it matches the expression.
type FilterResponse struct {
	Matches []bool `json:"matches"`
}

// CalcRequest is the body of POST /v1/calc.
type CalcRequest struct {
	Expression string `json:"expression"`
	// Digits is the number of significant digits in the result. Zero or
	// negative gives as many as needed to represent the result exactly.
	Digits int `json:"digits,omitempty"`
}

// CalcResponse holds the result of a calculation.
type CalcResponse struct {
	Result string `json:"result"`
}

type errorResponse struct {
	Error string `json:"error"`
	// Position is the column of the input that caused the error, if any.
	Position int `json:"position,omitempty"`
}

func (s *Server) handleFilter(w http.ResponseWriter, r *http.Request) {
	var req FilterRequest
	if !s.decode(w, r, &req) {
		return
	}
	st := s.state.Load()
	g, err := parse(s, ModeLogic, st.logic, st.logicCache, st.opts, req.Expression)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	resp := FilterResponse{Matches: make([]bool, len(req.Texts))}
	for i, text := range req.Texts {
		start := time.Now()
		res, err := g.Evaluate(gvalop.ContainsFold(text))
		s.metrics.RecordEvaluate(ModeLogic, time.Since(start), err)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		resp.Matches[i] = res.Value
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCalc(w http.ResponseWriter, r *http.Request) {
	var req CalcRequest
	if !s.decode(w, r, &req) {
		return
	}
	st := s.state.Load()
	g, err := parse(s, ModeArith, st.arith, st.arithCache, st.opts, req.Expression)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	start := time.Now()
	res, err := g.EvaluateFunc(gvalop.Number(st.cfg.Arith.Prec))
	s.metrics.RecordEvaluate(ModeArith, time.Since(start), err)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	digits := req.Digits
	if digits <= 0 {
		digits = -1
	}
	writeJSON(w, http.StatusOK, CalcResponse{Result: res.Value.Text('g', digits)})
}

// parse gets a parsed tree from the cache or parses and caches it.
func parse[T any](s *Server, mode string, reg *gvalop.Registry[T], c *cache[T], opts []gvalop.ParseOption, expr string) (*gvalop.Group[T], error) {
	if g, ok := c.get(expr); ok {
		s.metrics.RecordCacheLookup(mode, true)
		return g, nil
	}
	s.metrics.RecordCacheLookup(mode, false)
	start := time.Now()
	g, err := reg.Parse(expr, opts...)
	s.metrics.RecordParse(mode, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	s.metrics.SetCacheEntries(mode, c.put(expr, g))
	return g, nil
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	body := http.MaxBytesReader(w, r.Body, s.state.Load().cfg.Server.MaxBodyBytes)
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		s.logger.DebugContext(r.Context(), "bad request body", "error", err, "request_id", RequestID(r.Context()))
		code := http.StatusBadRequest
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			code = http.StatusRequestEntityTooLarge
		}
		writeJSON(w, code, errorResponse{Error: "invalid request body: " + err.Error()})
		return false
	}
	return true
}

// writeError reports an expression error. Errors with a position in the
// input, including evaluation errors, are the client's fault.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var ie gvalop.InputError
	if errors.As(err, &ie) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error(), Position: ie.Pos()})
		return
	}
	s.logger.ErrorContext(r.Context(), "evaluation failed", "error", err, "request_id", RequestID(r.Context()))
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}


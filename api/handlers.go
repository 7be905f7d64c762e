package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"pottery-cost/adapters/presets"
	"pottery-cost/adapters/storage"
	"pottery-cost/core/output"
	"pottery-cost/core/session"
	"pottery-cost/core/shipping"
	"pottery-cost/internal/errors"
)

// readBody returns the request body, or "{}" when it is empty
func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, errors.Wrap(errors.TypeInput, "failed to read request body", err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return []byte("{}"), nil
	}
	return data, nil
}

func pathParam(r *http.Request, name string) string {
	v := chi.URLParam(r, name)
	if u, err := url.PathUnescape(v); err == nil {
		return u
	}
	return v
}

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respond(w, map[string]interface{}{
		"status":  "healthy",
		"version": s.config.Version,
		"time":    time.Now().UTC().Format(time.RFC3339),
		"storage": s.store != nil,
	}, http.StatusOK)
}

// handleVersion handles GET /version
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	s.respond(w, map[string]string{
		"version":     s.config.Version,
		"engine":      "pottery-cost",
		"api_version": "v1",
		"uptime":      time.Since(s.started).Round(time.Second).String(),
	}, http.StatusOK)
}

// priceDisplay is the formatted per-piece total and prices
type priceDisplay struct {
	Total       string `json:"total"`
	Wholesale   string `json:"wholesale"`
	Retail      string `json:"retail"`
	Distributor string `json:"distributor,omitempty"`
}

type estimateResponse struct {
	Report    *output.Report  `json:"report"`
	Display   priceDisplay    `json:"display"`
	Preset    *presets.Preset `json:"preset,omitempty"`
	Fallbacks []string        `json:"fallbacks,omitempty"`
}

// handleEstimate handles POST /estimate. The body is a settings file;
// ?preset= applies a form preset first.
func (s *Server) handleEstimate(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		s.writeErr(w, err)
		return
	}
	sess, fallbacks, err := session.Decode(body)
	if err != nil {
		s.writeErr(w, err)
		return
	}

	resp := estimateResponse{Fallbacks: fallbacks}
	if name := r.URL.Query().Get("preset"); name != "" {
		p, err := s.findPreset(r, name)
		if err != nil {
			s.writeErr(w, err)
			return
		}
		presets.Apply(p, &sess)
		resp.Preset = &p
	}

	est, err := s.engine.Estimate(r.Context(), sess.Request())
	if err != nil {
		s.writeErr(w, err)
		return
	}

	c := s.config.Currency
	resp.Report = output.NewReport(r.URL.Query().Get("title"), sess.Inputs, est, c)
	prices := est.Breakdown.Prices
	resp.Display = priceDisplay{
		Total:     output.MoneyIn(est.Breakdown.Total, c),
		Wholesale: output.PriceText(prices.Wholesale, c),
		Retail:    output.PriceText(prices.Retail, c),
	}
	if prices.Distributor.OK() {
		resp.Display.Distributor = output.PriceText(prices.Distributor, c)
	}
	s.respond(w, resp, http.StatusOK)
}

type shippingResponse struct {
	shipping.Result
	Display struct {
		Shipping string `json:"shipping"`
		Duty     string `json:"duty"`
		VAT      string `json:"vat"`
		Landed   string `json:"landed"`
	} `json:"display"`
}

// handleShipping handles POST /shipping
func (s *Server) handleShipping(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		s.writeErr(w, err)
		return
	}
	var req shipping.Request
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, "INVALID_JSON", err.Error(), http.StatusBadRequest)
		return
	}
	if req.Rates.BaseRate.IsZero() && req.Rates.PerKgRate.IsZero() {
		divisor := req.Rates.DimDivisor
		req.Rates = shipping.DefaultRates()
		if divisor.IsPositive() {
			req.Rates.DimDivisor = divisor
		}
	}

	res := shippingResponse{Result: shipping.Quote(req)}
	c := s.config.Currency
	res.Display.Shipping = output.MoneyDecimal(res.Shipping, c)
	res.Display.Duty = output.MoneyDecimal(res.Duty, c)
	res.Display.VAT = output.MoneyDecimal(res.VAT, c)
	res.Display.Landed = output.MoneyDecimal(res.Landed, c)
	s.respond(w, res, http.StatusOK)
}

func (s *Server) findPreset(r *http.Request, name string) (presets.Preset, error) {
	list, _ := s.presets.Load(r.Context())
	p, ok := presets.Find(list, name)
	if !ok {
		return presets.Preset{}, errors.NotFound("preset", name)
	}
	return p, nil
}

// handleListPresets handles GET /presets
func (s *Server) handleListPresets(w http.ResponseWriter, r *http.Request) {
	list, src := s.presets.Load(r.Context())
	s.respond(w, map[string]interface{}{
		"presets": list,
		"source":  src,
		"count":   len(list),
	}, http.StatusOK)
}

// handleApplyPreset handles POST /presets/{form}/apply. The body is the
// settings file to change; an empty body starts from a new session.
func (s *Server) handleApplyPreset(w http.ResponseWriter, r *http.Request) {
	p, err := s.findPreset(r, pathParam(r, "form"))
	if err != nil {
		s.writeErr(w, err)
		return
	}
	body, err := readBody(w, r)
	if err != nil {
		s.writeErr(w, err)
		return
	}
	sess, fallbacks, err := session.Decode(body)
	if err != nil {
		s.writeErr(w, err)
		return
	}
	presets.Apply(p, &sess)

	doc, err := session.Encode(sess)
	if err != nil {
		s.writeErr(w, err)
		return
	}
	s.respond(w, map[string]interface{}{
		"preset":    p,
		"session":   json.RawMessage(doc),
		"fallbacks": fallbacks,
	}, http.StatusOK)
}

type saveSessionRequest struct {
	Name    string          `json:"name"`
	Session json.RawMessage `json:"session"`
}

type sessionResponse struct {
	*storage.Record
	Session   json.RawMessage `json:"session,omitempty"`
	Fallbacks []string        `json:"fallbacks,omitempty"`
}

func newSessionResponse(rec *storage.Record, withSession bool) (sessionResponse, error) {
	resp := sessionResponse{Record: rec}
	if withSession {
		doc, err := session.Encode(rec.Session)
		if err != nil {
			return resp, err
		}
		resp.Session = doc
	}
	return resp, nil
}

// handleSaveSession handles POST /sessions and PUT /sessions/{id}
func (s *Server) handleSaveSession(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		s.writeErr(w, err)
		return
	}
	var req saveSessionRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, "INVALID_JSON", err.Error(), http.StatusBadRequest)
		return
	}
	if len(req.Session) == 0 {
		req.Session = json.RawMessage("{}")
	}
	sess, fallbacks, err := session.Decode(req.Session)
	if err != nil {
		s.writeErr(w, err)
		return
	}

	est, err := s.engine.Estimate(r.Context(), sess.Request())
	if err != nil {
		s.writeErr(w, err)
		return
	}

	rec := &storage.Record{
		ID:        pathParam(r, "id"),
		Name:      req.Name,
		TotalCost: decimal.NewFromFloat(est.Breakdown.Total).Round(2),
		Session:   sess,
	}
	if err := s.store.Save(r.Context(), rec); err != nil {
		s.writeErr(w, err)
		return
	}

	resp, err := newSessionResponse(rec, false)
	if err != nil {
		s.writeErr(w, err)
		return
	}
	resp.Fallbacks = fallbacks

	status := http.StatusCreated
	if r.Method == http.MethodPut {
		status = http.StatusOK
	}
	s.respond(w, resp, status)
}

// handleListSessions handles GET /sessions?prefix=&limit=&offset=
func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := &storage.ListFilter{NamePrefix: q.Get("prefix")}
	for name, dst := range map[string]*int{"limit": &filter.Limit, "offset": &filter.Offset} {
		v := q.Get(name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, string(errors.TypeInput), name+" must be a non-negative integer", http.StatusBadRequest)
			return
		}
		*dst = n
	}

	recs, err := s.store.List(r.Context(), filter)
	if err != nil {
		s.writeErr(w, err)
		return
	}
	s.respond(w, map[string]interface{}{
		"sessions": recs,
		"count":    len(recs),
	}, http.StatusOK)
}

// handleGetSession handles GET /sessions/{id}
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.Get(r.Context(), pathParam(r, "id"))
	if err != nil {
		s.writeErr(w, err)
		return
	}
	resp, err := newSessionResponse(rec, true)
	if err != nil {
		s.writeErr(w, err)
		return
	}
	s.respond(w, resp, http.StatusOK)
}

// handleDeleteSession handles DELETE /sessions/{id}
func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), pathParam(r, "id")); err != nil {
		s.writeErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleCompareSessions handles GET /sessions/{id}/compare/{other}
func (s *Server) handleCompareSessions(w http.ResponseWriter, r *http.Request) {
	cmp, err := storage.Compare(r.Context(), s.store, pathParam(r, "id"), pathParam(r, "other"))
	if err != nil {
		s.writeErr(w, err)
		return
	}
	s.respond(w, cmp, http.StatusOK)
}

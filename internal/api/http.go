package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/xtding233/volcano-backend/internal/game"
	"github.com/xtding233/volcano-backend/internal/logger"
	"github.com/xtding233/volcano-backend/internal/volcano"
)

type errResp struct {
	Err string `json:"err"`
}

type healthResp struct {
	Status       string `json:"status"`
	TableVersion string `json:"table_version,omitempty"`
	Layouts      int    `json:"layouts,omitempty"`
	Err          string `json:"err,omitempty"`
}

// NewHandler routes the HTTP and websocket endpoints.
func NewHandler(svc *Service, ws WebSocketConfig) http.Handler {
	h := &handler{svc: svc, ws: ws}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /predict", h.handlePredict)
	mux.HandleFunc("GET /floor", h.handleFloor)
	mux.HandleFunc("GET /sweep", h.handleSweep)
	mux.HandleFunc("GET /healthz", h.handleHealth)
	mux.HandleFunc("GET /ws", h.handleWebSocket)
	return mux
}

type handler struct {
	svc *Service
	ws  WebSocketConfig
}

func parseFloat(r *http.Request, key string) (*float64, error) {
	s := r.URL.Query().Get(key)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid %s", errBadRequest, key)
	}
	return &v, nil
}

func parseInt(r *http.Request, key string) (*int, error) {
	s := r.URL.Query().Get(key)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid %s", errBadRequest, key)
	}
	return &v, nil
}

func parseUint32(r *http.Request, key string) (*uint32, error) {
	s := r.URL.Query().Get(key)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid %s", errBadRequest, key)
	}
	u := uint32(v)
	return &u, nil
}

func parseBool(r *http.Request, key string) (*bool, error) {
	s := r.URL.Query().Get(key)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid %s", errBadRequest, key)
	}
	return &v, nil
}

// settingsFromQuery resolves ?profile= plus the override parameters.
func (h *handler) settingsFromQuery(r *http.Request) (volcano.GameSettings, error) {
	var o game.Overrides
	var err error

	s := r.URL.Query().Get("seed")
	if s != "" {
		v, perr := strconv.ParseInt(s, 10, 32)
		if perr != nil {
			return volcano.GameSettings{}, fmt.Errorf("%w: invalid seed", errBadRequest)
		}
		seed := int32(v)
		o.Seed = &seed
	}
	if o.DaysPlayed, err = parseUint32(r, "days"); err != nil {
		return volcano.GameSettings{}, err
	}
	if o.MaxLuckLevel, err = parseUint32(r, "luck_level"); err != nil {
		return volcano.GameSettings{}, err
	}
	flags := []struct {
		key string
		dst **bool
	}{
		{"legacy", &o.LegacyRNG},
		{"post_patch", &o.PostPatch},
		{"caldera", &o.HasCaldera},
		{"coconut", &o.CoconutUnlocked},
		{"charm", &o.SpecialCharm},
	}
	for _, f := range flags {
		if *f.dst, err = parseBool(r, f.key); err != nil {
			return volcano.GameSettings{}, err
		}
	}
	return h.svc.Resolve(r.URL.Query().Get("profile"), o)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	if isClientError(err) {
		writeJSON(w, http.StatusBadRequest, errResp{Err: err.Error()})
		return
	}
	logger.Error("request failed", "path", r.URL.Path, "error", err)
	writeJSON(w, http.StatusInternalServerError, errResp{Err: err.Error()})
}

// GET /predict?seed=&days=&luck_level=&...[&format=text]
func (h *handler) handlePredict(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settingsFromQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	p, cached, err := h.svc.Predict(r.Context(), settings)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if cached {
		w.Header().Set("X-Cache", "hit")
	} else {
		w.Header().Set("X-Cache", "miss")
	}
	if r.URL.Query().Get("format") == "text" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if err := volcano.WriteText(w, p); err != nil {
			logger.Error("write text prediction", "error", err)
		}
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// GET /floor?level=&layout=[&min_luck=&max_luck=]
func (h *handler) handleFloor(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settingsFromQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req floorRequest
	for _, p := range []struct {
		key string
		dst **int
	}{{"level", &req.Level}, {"layout", &req.Layout}} {
		if *p.dst, err = parseInt(r, p.key); err != nil {
			writeError(w, r, err)
			return
		}
	}
	if req.MinLuck, err = parseFloat(r, "min_luck"); err != nil {
		writeError(w, r, err)
		return
	}
	if req.MaxLuck, err = parseFloat(r, "max_luck"); err != nil {
		writeError(w, r, err)
		return
	}
	v, err := h.simulate(settings, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newFloorResponse(v))
}

func (h *handler) simulate(settings volcano.GameSettings, req floorRequest) (*volcano.FloorView, error) {
	level, layout, err := req.target()
	if err != nil {
		return nil, err
	}
	luck, err := req.luckRange()
	if err != nil {
		return nil, err
	}
	return h.svc.SimulateFloor(settings, level, layout, luck)
}

// GET /sweep?from=&to=&metric=[&probe=]
func (h *handler) handleSweep(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settingsFromQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	from, err := parseUint32(r, "from")
	if err != nil {
		writeError(w, r, err)
		return
	}
	to, err := parseUint32(r, "to")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if from == nil || to == nil {
		writeError(w, r, fmt.Errorf("%w: missing param from/to", errBadRequest))
		return
	}
	sp := volcano.SweepParams{FromDay: *from, ToDay: *to, Metric: volcano.SweepMetric(r.URL.Query().Get("metric"))}
	if sp.Metric == "" {
		sp.Metric = volcano.MetricDragonTeeth
	}
	if sp.ProbeLuck, err = parseFloat(r, "probe"); err != nil {
		writeError(w, r, err)
		return
	}
	res, err := h.svc.Sweep(settings, sp)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// GET /healthz
func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	version, layouts, err := h.svc.TableVersion()
	if err != nil {
		logger.Error("health check failed", "error", err)
		writeJSON(w, http.StatusServiceUnavailable, healthResp{Status: "unavailable", Err: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, healthResp{Status: "ok", TableVersion: version, Layouts: layouts})
}

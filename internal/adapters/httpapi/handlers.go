package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.trai.ch/flowd/internal/build"
	"go.trai.ch/flowd/internal/core/domain"
)

// maxBodyBytes caps the request body well above any pipeline that passes the
// node/edge limits.
const maxBodyBytes = 16 << 20

type nodePayload struct {
	ID   string         `json:"id"`
	Type string         `json:"type"`
	Data map[string]any `json:"data"`
}

type edgePayload struct {
	Source       string  `json:"source"`
	Target       string  `json:"target"`
	SourceHandle *string `json:"sourceHandle"`
	TargetHandle *string `json:"targetHandle"`
}

type parseRequest struct {
	Nodes []nodePayload `json:"nodes"`
	Edges []edgePayload `json:"edges"`
}

type parseResponse struct {
	NumNodes    int      `json:"num_nodes"`
	NumEdges    int      `json:"num_edges"`
	IsDAG       bool     `json:"is_dag"`
	Cycle       []string `json:"cycle"`
	CacheHit    bool     `json:"cache_hit"`
	ProcessTime float64  `json:"process_time"`
}

type errorResponse struct {
	Error      string    `json:"error"`
	StatusCode int       `json:"status_code"`
	Timestamp  time.Time `json:"timestamp"`
}

type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
}

type cacheStatsPayload struct {
	Size    int    `json:"size"`
	Hits    uint64 `json:"hits"`
	Misses  uint64 `json:"misses"`
	HitRate string `json:"hit_rate"`
}

type configPayload struct {
	MaxNodes     int  `json:"max_nodes"`
	MaxEdges     int  `json:"max_edges"`
	CacheEnabled bool `json:"cache_enabled"`
	CacheTTL     int  `json:"cache_ttl"`
}

type metricsResponse struct {
	CacheStats cacheStatsPayload `json:"cache_stats"`
	Config     configPayload     `json:"config"`
}

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"service": "flowd",
		"version": build.Version,
		"status":  "operational",
		"health":  "/health",
		"metrics": "/metrics",
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, healthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Version:   build.Version,
	})
}

func (s *Server) handleMetrics(w http.ResponseWriter, _ *http.Request) {
	stats := s.orch.CacheStats()
	s.writeJSON(w, http.StatusOK, metricsResponse{
		CacheStats: cacheStatsPayload{
			Size:    stats.Size,
			Hits:    stats.Hits,
			Misses:  stats.Misses,
			HitRate: fmt.Sprintf("%.2f%%", stats.HitRate),
		},
		Config: configPayload{
			MaxNodes:     s.cfg.MaxNodes,
			MaxEdges:     s.cfg.MaxEdges,
			CacheEnabled: s.cfg.CacheEnabled,
			CacheTTL:     int(s.cfg.CacheTTL / time.Second),
		},
	})
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req parseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusUnprocessableEntity, "invalid request body: "+err.Error())
		return
	}
	if req.Nodes == nil || req.Edges == nil {
		s.writeError(w, http.StatusUnprocessableEntity, "nodes and edges must be provided")
		return
	}

	report, err := s.orch.Analyze(r.Context(), toNodes(req.Nodes), toEdges(req.Edges))
	if err != nil {
		s.writeAnalysisError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, parseResponse{
		NumNodes:    report.NumNodes,
		NumEdges:    report.NumEdges,
		IsDAG:       report.IsDAG,
		Cycle:       report.Cycle,
		CacheHit:    report.CacheHit,
		ProcessTime: report.Elapsed.Seconds(),
	})
}

// writeAnalysisError maps the domain error taxonomy onto HTTP statuses.
// Internal faults stay opaque: the cause is already logged by the orchestrator.
func (s *Server) writeAnalysisError(w http.ResponseWriter, err error) {
	switch domain.KindOf(err) {
	case domain.KindValidation:
		s.writeError(w, http.StatusUnprocessableEntity, err.Error())
	case domain.KindStructural:
		s.writeError(w, http.StatusBadRequest, err.Error())
	default:
		s.writeError(w, http.StatusInternalServerError, "internal server error during pipeline analysis")
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error(err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, errorResponse{
		Error:      msg,
		StatusCode: status,
		Timestamp:  time.Now().UTC(),
	})
}

func toNodes(in []nodePayload) []domain.Node {
	out := make([]domain.Node, len(in))
	for i, n := range in {
		out[i] = domain.Node{ID: n.ID, Type: n.Type, Data: n.Data}
	}
	return out
}

func toEdges(in []edgePayload) []domain.Edge {
	out := make([]domain.Edge, len(in))
	for i, e := range in {
		out[i] = domain.Edge{
			Source:       e.Source,
			Target:       e.Target,
			SourceHandle: deref(e.SourceHandle),
			TargetHandle: deref(e.TargetHandle),
		}
	}
	return out
}

// deref folds an absent handle into the empty token used for fingerprinting.
func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

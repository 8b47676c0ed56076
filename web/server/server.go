package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"

	"github.com/golang/glog"

	"github.com/df07/go-light-sampler/pkg/lightdist"
	"github.com/df07/go-light-sampler/pkg/scene"
)

// Server answers inspection requests about light sampling strategies: what
// distribution a strategy returns at a point, where its photons landed, and
// its lookup counters
type Server struct {
	port int

	mu       sync.Mutex
	sessions map[string]*session
}

// session is one constructed strategy over one built-in scene, kept alive
// across requests so its counters accumulate
type session struct {
	scene   *scene.Scene
	distrib lightdist.LightDistribution
	config  lightdist.Config
}

// NewServer creates an inspector server on the given port
func NewServer(port int) *Server {
	return &Server{port: port, sessions: make(map[string]*session)}
}

// Start registers the API routes and serves until the listener fails
func (s *Server) Start() error {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/lookup", s.handleLookup)
	mux.HandleFunc("/api/lookup/ws", s.handleLookupSocket)
	mux.HandleFunc("/api/photons", s.handlePhotons)
	mux.HandleFunc("/api/stats", s.handleStats)

	addr := fmt.Sprintf(":%d", s.port)
	glog.Infof("light sampler inspector listening on %s", addr)
	return http.ListenAndServe(addr, mux)
}

// handleHealth is a liveness probe
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists the built-in scenes and known strategies
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"scenes": scene.Names(),
		"strategies": []string{
			"uniform", "power", "spatial", "photonvoxel",
			"photontree", "mlcdftree", "cdftree",
		},
	})
}

// getSession returns the cached strategy for the scene/strategy pair in the
// request, constructing it on first use
func (s *Server) getSession(query url.Values) (*session, error) {
	sceneName := query.Get("scene")
	if sceneName == "" {
		sceneName = "twolight-box"
	}
	cfg := lightdist.DefaultConfig()
	if strategy := query.Get("strategy"); strategy != "" {
		cfg.Strategy = strategy
	}
	var err error
	if cfg.PhotonCount, err = parseIntParam(query, "photons", cfg.PhotonCount, 1, 10_000_000); err != nil {
		return nil, err
	}
	if cfg.MaxVoxels, err = parseIntParam(query, "maxVoxels", cfg.MaxVoxels, 1, 1<<19); err != nil {
		return nil, err
	}

	key := sceneName + "/" + cfg.Strategy + "/" + strconv.Itoa(cfg.PhotonCount) + "/" + strconv.Itoa(cfg.MaxVoxels)
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[key]; ok {
		return sess, nil
	}

	sc, err := scene.Load(sceneName)
	if err != nil {
		return nil, err
	}
	distrib, err := lightdist.New(cfg, sc)
	if err != nil {
		return nil, err
	}
	sess := &session{scene: sc, distrib: distrib, config: cfg}
	s.sessions[key] = sess
	glog.Infof("inspector: built %s strategy for scene %s", distrib.Name(), sceneName)
	return sess, nil
}

// handleStats reports the strategy's lookup counters
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	sess, err := s.getSession(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	reporter, ok := sess.distrib.(lightdist.StatsReporter)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Errorf("strategy %q reports no stats", sess.distrib.Name()))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"strategy": sess.distrib.Name(),
		"stats":    reporter.Stats(),
	})
}

// writeJSON writes a JSON response with the given status
func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		glog.Errorf("inspector: encoding response: %v", err)
	}
}

// writeError writes a JSON error response
func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// parseIntParam parses an integer query parameter with range validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	value := values.Get(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %s", key, value)
	}
	if parsed < min || parsed > max {
		return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
	}
	return parsed, nil
}

// parseFloatParam parses a float query parameter
func parseFloatParam(values url.Values, key string, defaultValue float64) (float64, error) {
	value := values.Get(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %s", key, value)
	}
	return parsed, nil
}

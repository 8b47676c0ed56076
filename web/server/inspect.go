package server

import (
	"net/http"
	"net/url"

	"github.com/df07/go-light-sampler/pkg/core"
	"github.com/df07/go-light-sampler/pkg/lightdist"
)

// LookupResult is the distribution a strategy returns for one query point
type LookupResult struct {
	Strategy string    `json:"strategy"`
	Point    core.Vec3 `json:"point"`
	PDFs     []float64 `json:"pdfs"`
}

// parsePoint reads the x, y, z query parameters, all defaulting to zero
func parsePoint(query url.Values) (core.Vec3, error) {
	x, err := parseFloatParam(query, "x", 0)
	if err != nil {
		return core.Vec3{}, err
	}
	y, err := parseFloatParam(query, "y", 0)
	if err != nil {
		return core.Vec3{}, err
	}
	z, err := parseFloatParam(query, "z", 0)
	if err != nil {
		return core.Vec3{}, err
	}
	return core.NewVec3(x, y, z), nil
}

// lookupAt queries the session's strategy at p and copies the per-light PDFs
// out of the (possibly transient) distribution
func (sess *session) lookupAt(p core.Vec3) LookupResult {
	dist := sess.distrib.Lookup(p, core.NewVec3(0, 1, 0))
	defer dist.Release()
	pdfs := make([]float64, dist.Count())
	for i := range pdfs {
		pdfs[i] = dist.DiscretePDF(i)
	}
	return LookupResult{Strategy: sess.distrib.Name(), Point: p, PDFs: pdfs}
}

// handleLookup answers a one-shot distribution query
func (s *Server) handleLookup(w http.ResponseWriter, r *http.Request) {
	sess, err := s.getSession(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	p, err := parsePoint(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, sess.lookupAt(p))
}

// handlePhotons dumps the photon cloud a photon-based strategy would build
// from, so a client can visualize what the strategy learned
func (s *Server) handlePhotons(w http.ResponseWriter, r *http.Request) {
	sess, err := s.getSession(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	var photons []lightdist.Photon
	if dumper, ok := sess.distrib.(lightdist.PhotonDumper); ok {
		photons = dumper.PhotonDump()
	} else {
		cfg := sess.config
		if cfg.PhotonCount > 100_000 {
			cfg.PhotonCount = 100_000
		}
		photons, err = lightdist.TracePhotons(cfg, sess.scene)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"count":   len(photons),
		"photons": photons,
	})
}

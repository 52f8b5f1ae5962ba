package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"handclass/server/engine"
	"handclass/server/store"
)

// handReport is the JSON shape shared by the CLI, the API and the store.
type handReport struct {
	ID        int64    `json:"id,omitempty"`
	Cards     []string `json:"cards"`
	Display   string   `json:"display"`
	Category  string   `json:"category"`
	Text      string   `json:"text"`
	KindRank  string   `json:"kind_rank,omitempty"`
	KindCount int      `json:"kind_count"`
	TieBreak  string   `json:"tie_break"`
	Library   string   `json:"library,omitempty"`
	Skipped   []string `json:"skipped,omitempty"`
}

func report(h engine.Hand, cl engine.Classifier) handReport {
	res := cl.Classify(h)
	rep := handReport{
		Cards:     h.Tokens(),
		Display:   h.String(),
		Category:  res.Category.String(),
		Text:      res.Text,
		KindCount: res.Signals.KindCount,
		TieBreak:  cl.TieBreak.String(),
	}
	if res.Signals.KindCount > 0 {
		rep.KindRank = res.Signals.KindRank.Name()
	}
	if len(h) == 5 {
		if d, err := engine.Describe(h); err == nil {
			rep.Library = d
		}
	}
	return rep
}

func (rep handReport) record(source string) store.HandRecord {
	rec := store.HandRecord{
		Source:    source,
		Cards:     rep.Cards,
		Category:  rep.Category,
		Text:      rep.Text,
		KindCount: rep.KindCount,
		TieBreak:  rep.TieBreak,
	}
	if rep.KindRank != "" {
		rec.KindRank = &rep.KindRank
	}
	if rep.Library != "" {
		rec.LibraryDesc = &rep.Library
	}
	return rec
}

// lockedSeeds hands out one independent seed per request.
type lockedSeeds struct {
	mu sync.Mutex
	s  *engine.SeedStream
}

func (l *lockedSeeds) source() engine.Source {
	l.mu.Lock()
	seed := l.s.Next()
	l.mu.Unlock()
	return engine.NewSource(int64(seed | 1))
}

type api struct {
	db    *store.DB // nil disables history
	cl    engine.Classifier
	seeds *lockedSeeds
}

// Router serves the classifier over HTTP. db may be nil.
func Router(db *store.DB, cl engine.Classifier, seedBase uint64) http.Handler {
	a := &api{db: db, cl: cl, seeds: &lockedSeeds{s: engine.NewSeedStream(seedBase)}}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(10 * time.Second))

	r.Get("/api/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "db": db != nil})
	})
	r.Post("/api/classify", a.handleClassify)
	r.Get("/api/deal", a.handleDeal)
	r.Route("/api/hands", func(r chi.Router) {
		r.Use(a.requireDB)
		r.Get("/recent", a.handleRecent)
		r.Get("/stats", a.handleStats)
		r.Get("/{id}", a.handleGetHand)
	})
	return r
}

type classifyRequest struct {
	Hand             string `json:"hand"`
	Strict           bool   `json:"strict"`
	TieBreak         string `json:"tie_break"`
	DistinctStraight *bool  `json:"distinct_straight"`
}

func (a *api) classifierFor(req classifyRequest) engine.Classifier {
	cl := a.cl
	if req.TieBreak != "" {
		cl.TieBreak = engine.ParseTieBreak(strings.ToLower(strings.TrimSpace(req.TieBreak)))
	}
	if req.DistinctStraight != nil {
		cl.RequireDistinctRanks = *req.DistinctStraight
	}
	return cl
}

func (a *api) handleClassify(w http.ResponseWriter, r *http.Request) {
	var req classifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	var skipped []string
	policy := engine.CollectInvalid(&skipped)
	if req.Strict {
		policy = engine.RejectInvalid
	}
	h, err := engine.ParseHandWith(req.Hand, policy)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	rep := report(h, a.classifierFor(req))
	rep.Skipped = skipped
	a.save(r.Context(), &rep, "parse")
	writeJSON(w, http.StatusOK, rep)
}

func (a *api) handleDeal(w http.ResponseWriter, r *http.Request) {
	n := 5
	if s := r.URL.Query().Get("n"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			writeError(w, http.StatusBadRequest, "n must be an integer")
			return
		}
		n = v
	}
	h, err := engine.Deal(a.seeds.source(), n)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	rep := report(h, a.cl)
	a.save(r.Context(), &rep, "deal")
	writeJSON(w, http.StatusOK, rep)
}

// save records rep when a DB is configured. Failures are logged, not returned.
func (a *api) save(ctx context.Context, rep *handReport, source string) {
	if a.db == nil {
		return
	}
	id, err := a.db.RecordHand(ctx, rep.record(source))
	if err != nil {
		log.Printf("record hand: %v", err)
		return
	}
	rep.ID = id
}

func (a *api) requireDB(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a.db == nil {
			writeError(w, http.StatusServiceUnavailable, "history disabled (no DATABASE_URL)")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (a *api) handleRecent(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	hands, err := a.db.RecentHands(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, hands)
}

func (a *api) handleStats(w http.ResponseWriter, r *http.Request) {
	counts, err := a.db.CategoryCounts(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, counts)
}

func (a *api) handleGetHand(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad id")
		return
	}
	rec, ok, err := a.db.GetHand(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "no such hand")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/jsphweid/voicedex/catalog"
	"github.com/jsphweid/voicedex/chord"
	"github.com/jsphweid/voicedex/midi"
	"github.com/jsphweid/voicedex/model"
)

const buildHeader = "X-Catalog-Build"

// largest request body accepted by /search
const maxBodyBytes = 1 << 20

var errNoCatalog = errors.New("catalog not loaded")

type catalogHandler func(w http.ResponseWriter, r *http.Request, c *catalog.Catalog)

func (s *Server) withCatalog(h catalogHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := s.store.Get()
		if c == nil {
			s.writeError(w, r, http.StatusServiceUnavailable, errNoCatalog)
			return
		}
		w.Header().Set(buildHeader, c.BuildID())
		h(w, r, c)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	c := s.store.Get()
	if c == nil {
		writeJSON(w, http.StatusServiceUnavailable, model.HealthResponse{Status: "loading"})
		return
	}
	w.Header().Set(buildHeader, c.BuildID())
	writeJSON(w, http.StatusOK, model.HealthResponse{
		Status:   "ok",
		Build:    c.BuildID(),
		Chords:   len(c.ChordNames()),
		Scales:   len(c.ScaleNames()),
		LoadedAt: c.LoadedAt().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleChords(w http.ResponseWriter, r *http.Request, c *catalog.Catalog) {
	writeJSON(w, http.StatusOK, c.Summaries())
}

func (s *Server) handleChord(w http.ResponseWriter, r *http.Request, c *catalog.Catalog) {
	ch, err := c.Chord(mux.Vars(r)["name"])
	if err != nil {
		s.writeLookupError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ch)
}

func (s *Server) handleVoicing(w http.ResponseWriter, r *http.Request, c *catalog.Catalog) {
	res, err := s.voicing(r, c)
	if err != nil {
		s.writeLookupError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleVoicingMidi(w http.ResponseWriter, r *http.Request, c *catalog.Catalog) {
	res, err := s.voicing(r, c)
	if err != nil {
		s.writeLookupError(w, r, err)
		return
	}

	var buf bytes.Buffer
	notes := make(model.Notes, 0, len(res.Midi))
	for _, n := range res.Midi {
		notes = append(notes, uint8(n))
	}
	if err := midi.WriteVoicing(&buf, notes, s.opts.Midi); err != nil {
		s.writeError(w, r, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "audio/midi")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", res.Chord+"-"+res.Voicing.Name+".mid"))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func (s *Server) voicing(r *http.Request, c *catalog.Catalog) (model.VoicingResponse, error) {
	vars := mux.Vars(r)

	transpose := 0
	if raw := r.URL.Query().Get("transpose"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return model.VoicingResponse{}, fmt.Errorf("transpose %q is not an integer: %w", raw, model.ErrBadRequest)
		}
		transpose = n
	}
	return c.VoicingView(vars["name"], vars["voicing"], transpose, s.opts.DefaultOctave)
}

func (s *Server) handleScales(w http.ResponseWriter, r *http.Request, c *catalog.Catalog) {
	names := c.ScaleNames()
	res := make([]model.Scale, 0, len(names))
	for _, name := range names {
		sc, err := c.Scale(name)
		if err != nil {
			s.writeError(w, r, http.StatusInternalServerError, err)
			return
		}
		res = append(res, sc)
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleScale(w http.ResponseWriter, r *http.Request, c *catalog.Catalog) {
	sc, err := c.Scale(mux.Vars(r)["name"])
	if err != nil {
		s.writeLookupError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sc)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request, c *catalog.Catalog) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}

	var input model.SearchRequestBody
	if err := json.Unmarshal(body, &input); err != nil {
		s.writeError(w, r, http.StatusBadRequest, fmt.Errorf("could not unmarshal request body: %w", err))
		return
	}
	if len(input.Chords) == 0 {
		s.writeError(w, r, http.StatusBadRequest, errors.New("chords must not be empty"))
		return
	}

	res := make([]model.SearchResponse, 0, len(input.Chords))
	for _, notes := range input.Chords {
		for _, n := range notes {
			if n > 127 {
				s.writeError(w, r, http.StatusBadRequest, fmt.Errorf("note %d is not a MIDI note", n))
				return
			}
		}
		results := c.Search(notes)
		if results == nil {
			results = []model.SearchResult{}
		}
		res = append(res, model.SearchResponse{Key: chord.ClassKey(notes), Results: results})
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) writeLookupError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, model.ErrNotFound):
		s.writeError(w, r, http.StatusNotFound, err)
	case errors.Is(err, model.ErrBadRequest):
		s.writeError(w, r, http.StatusBadRequest, err)
	default:
		s.writeError(w, r, http.StatusInternalServerError, err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	if status >= http.StatusInternalServerError {
		s.logger.ErrorContext(r.Context(), "request failed",
			"error", err, "path", r.URL.Path, "request_id", requestIDFrom(r.Context()))
	}
	writeJSON(w, status, model.ErrorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

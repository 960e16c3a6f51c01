package server

import (
	"errors"
	"io"
	"net/http"

	fsbi "github.com/hupe1980/fsbi"
)

type indexRequest struct {
	DocID string         `json:"doc_id"`
	Text  string         `json:"text"`
	Meta  map[string]any `json:"meta"`
}

type queryRequest struct {
	Q          string          `json:"q"`
	TopK       *int            `json:"top_k"`
	Thresholds map[int]float64 `json:"thresholds"`
}

type queryHit struct {
	DocID   string  `json:"doc_id"`
	Score   float64 `json:"score"`
	Snippet string  `json:"snippet"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"docs":   s.db.DocumentCount(),
	})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	var req indexRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	// Required fields are validated here, before invoking the core.
	if req.DocID == "" {
		s.writeError(w, http.StatusBadRequest, "missing required field: doc_id")
		return
	}
	if req.Text == "" {
		s.writeError(w, http.StatusBadRequest, "missing required field: text")
		return
	}

	if err := s.db.IndexDocument(r.Context(), req.DocID, req.Text, req.Meta); err != nil {
		if errors.Is(err, fsbi.ErrMissingField) {
			s.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.metrics.DocsIndexedTotal.Inc()
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status": "indexed",
		"doc_id": req.DocID,
	})
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	topK := 10
	if req.TopK != nil {
		topK = *req.TopK
	}

	results, err := s.db.Query(r.Context(), req.Q, topK, req.Thresholds)
	if err != nil {
		if errors.Is(err, fsbi.ErrInvalidTopK) {
			s.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	hits := make([]queryHit, 0, len(results))
	for _, res := range results {
		doc, _ := s.db.GetDoc(res.DocID)
		hits = append(hits, queryHit{
			DocID:   res.DocID,
			Score:   res.Score,
			Snippet: snippet(doc.Text),
		})
	}

	s.metrics.QueryResultsCount.Observe(float64(len(hits)))
	s.writeJSON(w, http.StatusOK, map[string]any{"results": hits})
}

func (s *Server) handleGetDoc(w http.ResponseWriter, r *http.Request) {
	docID := r.PathValue("id")

	entry, ok := s.db.GetDoc(docID)
	if !ok {
		// An unknown document is an empty result, not a failure mode.
		s.writeJSON(w, http.StatusNotFound, map[string]any{})
		return
	}
	s.writeJSON(w, http.StatusOK, entry)
}

func (s *Server) handleDeleteDoc(w http.ResponseWriter, r *http.Request) {
	docID := r.PathValue("id")

	existed := s.db.RemoveDocument(r.Context(), docID)
	if !existed {
		s.writeJSON(w, http.StatusNotFound, map[string]any{})
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status": "removed",
		"doc_id": docID,
	})
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	var snap any
	if r.URL.Query().Get("noisy") == "1" {
		snap = s.db.SnapshotNoisy(r.Context())
	} else {
		snap = s.db.Snapshot(r.Context())
	}
	s.gzipJSON(w, r, map[string]any{"snapshot": snap})
}

func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 16<<20))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "request body too large or unreadable")
		return false
	}
	if err := s.codec.Unmarshal(data, v); err != nil {
		s.writeError(w, http.StatusBadRequest, "malformed request body")
		return false
	}
	return true
}

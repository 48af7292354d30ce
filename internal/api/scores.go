package api

import (
	"bytes"
	"encoding/json"
	"math"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/vovakirdan/snakeboard/internal/storage"
)

const (
	maxBodyBytes = 4 << 10
	maxScore     = math.MaxInt32
)

type submitRequest struct {
	Username string          `json:"username"`
	Score    json.RawMessage `json:"score"`
}

type errorResponse struct {
	Message string `json:"message"`
}

func (s *Server) handleListScores(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	records, err := s.lb.TopScores(r.Context(), storage.DefaultLimit)
	if err != nil || records == nil {
		records = []storage.ScoreRecord{}
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleSubmitScore(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "request body must be a JSON object")
		return
	}

	score, ok := parseScore(req.Score)
	if !ok {
		writeError(w, http.StatusBadRequest, "score must be a non-negative integer")
		return
	}

	record, err := s.lb.SubmitScore(r.Context(), req.Username, score)
	if err != nil {
		if storage.IsValidation(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to save score")
		return
	}

	s.logger.Info("Score submitted", "id", record.ID, "username", record.Username, "score", record.Score)
	writeJSON(w, http.StatusCreated, record)
}

// parseScore accepts any JSON number with an integral value, so 100, 1e2
// and 100.0 are the same score. Strings, fractions and null are rejected.
func parseScore(raw json.RawMessage) (int, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] == '"' {
		return 0, false
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil || n == "" {
		return 0, false
	}
	if i, err := n.Int64(); err == nil {
		return int(i), i >= 0 && i <= maxScore
	}
	f, err := n.Float64()
	if err != nil || f != math.Trunc(f) || f < 0 || f > maxScore {
		return 0, false
	}
	return int(f), true
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Message: message})
}

package server

import (
	"net/http"
	"time"

	"github.com/abdul-rehman-0609/FYP-Navigator/internal/recommender"
)

// HealthResponse reports liveness.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	MLEnabled bool      `json:"ml_enabled"`
}

// StatsResponse summarizes stored data and catalog size.
type StatsResponse struct {
	Students        int `json:"students"`
	Recommendations int `json:"recommendations"`
	HistoryEntries  int `json:"history_entries"`
	Topics          int `json:"topics"`
	Selections      int `json:"selections"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: s.now().UTC(),
		MLEnabled: true,
	})
}

func (s *Server) handleOptions(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.engine.ListOptions())
}

func (s *Server) handleGetTopic(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	topic, ok := s.engine.Catalog().Topic(id)
	if !ok {
		s.failure(w, r, &recommender.UnknownTopicError{TopicID: id})
		return
	}
	s.jsonResponse(w, http.StatusOK, topic)
}

// handleStats counts recommendations as the total number of topics shown across
// every history entry.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	students, err := s.students.ListStudents(r.Context())
	if err != nil {
		s.failure(w, r, err)
		return
	}
	history, err := s.history.ListHistory(r.Context(), "")
	if err != nil {
		s.failure(w, r, err)
		return
	}

	shown := 0
	for _, entry := range history {
		shown += len(entry.Recommendations)
	}
	s.jsonResponse(w, http.StatusOK, StatsResponse{
		Students:        len(students),
		Recommendations: shown,
		HistoryEntries:  len(history),
		Topics:          s.engine.Catalog().Len(),
		Selections:      s.engine.Tracker().Len(),
	})
}

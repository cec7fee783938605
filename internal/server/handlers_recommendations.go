package server

import (
	"net/http"

	"github.com/abdul-rehman-0609/FYP-Navigator/internal/recommender"
	"github.com/abdul-rehman-0609/FYP-Navigator/internal/types"
)

// DefaultRecommendationCount is used when a request names no count.
const DefaultRecommendationCount = 5

// RecommendRequest asks for recommendations for a stored student.
type RecommendRequest struct {
	StudentID string   `json:"student_id" validate:"required"`
	Count     int      `json:"count" validate:"gte=0,lte=100"`
	Exclude   []string `json:"exclude"`
}

// SelectTopicRequest claims a topic for a stored student.
type SelectTopicRequest struct {
	StudentID string  `json:"student_id" validate:"required"`
	TopicID   string  `json:"topic_id" validate:"required"`
	Score     float64 `json:"score" validate:"gte=0"`
}

// HistoryRequest saves a recommendation run shown to a student.
type HistoryRequest struct {
	StudentID       string                 `json:"student_id" validate:"required"`
	Recommendations []types.Recommendation `json:"recommendations"`
	FallbackUsed    bool                   `json:"fallback_used"`
}

// SelectionsResponse lists every claim.
type SelectionsResponse struct {
	Selections []types.Claim `json:"selections"`
	Count      int           `json:"count"`
}

func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	var req RecommendRequest
	if err := decodeRequest(r, &req); err != nil {
		s.failure(w, r, err)
		return
	}
	if req.Count == 0 {
		req.Count = DefaultRecommendationCount
	}

	excluded := make(map[string]bool, len(req.Exclude))
	for _, id := range req.Exclude {
		excluded[id] = true
	}

	set, err := s.engine.RecommendForStudent(r.Context(), s.students, req.StudentID, excluded, req.Count)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, set)
}

func (s *Server) handleSelectTopic(w http.ResponseWriter, r *http.Request) {
	var req SelectTopicRequest
	if err := decodeRequest(r, &req); err != nil {
		s.failure(w, r, err)
		return
	}

	student, err := s.students.GetStudent(r.Context(), req.StudentID)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	if student == nil {
		s.failure(w, r, &recommender.UnknownStudentError{StudentID: req.StudentID})
		return
	}

	claim, err := s.engine.SelectNamed(r.Context(), student.ID, student.Name, req.TopicID, req.Score)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	s.logger.Info().
		Str("student_id", claim.StudentID).
		Str("topic_id", claim.TopicID).
		Msg("topic selected")
	s.jsonResponse(w, http.StatusCreated, claim)
}

func (s *Server) handleListSelections(w http.ResponseWriter, _ *http.Request) {
	claims := s.engine.Tracker().Snapshot()
	if claims == nil {
		claims = []types.Claim{}
	}
	s.jsonResponse(w, http.StatusOK, SelectionsResponse{Selections: claims, Count: len(claims)})
}

func (s *Server) handleClearSelections(w http.ResponseWriter, r *http.Request) {
	if err := s.engine.Tracker().ClearAll(r.Context()); err != nil {
		s.failure(w, r, err)
		return
	}
	s.logger.Info().Msg("selections cleared")
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListHistory(w http.ResponseWriter, r *http.Request) {
	entries, err := s.history.ListHistory(r.Context(), r.URL.Query().Get("student_id"))
	if err != nil {
		s.failure(w, r, err)
		return
	}
	if entries == nil {
		entries = []types.HistoryEntry{}
	}
	s.jsonResponse(w, http.StatusOK, entries)
}

func (s *Server) handleAppendHistory(w http.ResponseWriter, r *http.Request) {
	var req HistoryRequest
	if err := decodeRequest(r, &req); err != nil {
		s.failure(w, r, err)
		return
	}

	student, err := s.students.GetStudent(r.Context(), req.StudentID)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	if student == nil {
		s.failure(w, r, &recommender.UnknownStudentError{StudentID: req.StudentID})
		return
	}

	set := &types.RecommendationSet{
		StudentID:       student.ID,
		Requested:       len(req.Recommendations),
		FallbackUsed:    req.FallbackUsed,
		Recommendations: req.Recommendations,
	}
	if _, err := s.history.AppendHistory(r.Context(), student, set); err != nil {
		s.failure(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleClearHistory(w http.ResponseWriter, r *http.Request) {
	if err := s.history.ClearHistory(r.Context()); err != nil {
		s.failure(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

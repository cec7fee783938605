package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/abdul-rehman-0609/FYP-Navigator/internal/schemas"
	"github.com/abdul-rehman-0609/FYP-Navigator/internal/types"
	rootschemas "github.com/abdul-rehman-0609/FYP-Navigator/schemas"
	"github.com/go-playground/validator/v10"
)

func (s *Server) handleListStudents(w http.ResponseWriter, r *http.Request) {
	students, err := s.students.ListStudents(r.Context())
	if err != nil {
		s.failure(w, r, err)
		return
	}
	if students == nil {
		students = []*types.StudentProfile{}
	}
	s.jsonResponse(w, http.StatusOK, students)
}

func (s *Server) handleGetStudent(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	student, err := s.students.GetStudent(r.Context(), id)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	if student == nil {
		s.failure(w, r, &types.StudentNotFoundError{StudentID: id})
		return
	}
	s.jsonResponse(w, http.StatusOK, student)
}

func (s *Server) handleCreateStudent(w http.ResponseWriter, r *http.Request) {
	student, err := s.readStudent(r)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	if err := s.students.CreateStudent(r.Context(), student); err != nil {
		s.failure(w, r, err)
		return
	}
	s.logger.Info().Str("student_id", student.ID).Msg("student created")
	s.jsonResponse(w, http.StatusCreated, student)
}

func (s *Server) handleUpdateStudent(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	student, err := s.readStudent(r)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	if student.ID != id {
		s.failure(w, r, &ErrIDMismatch{PathID: id, BodyID: student.ID})
		return
	}
	if err := s.students.UpdateStudent(r.Context(), student); err != nil {
		s.failure(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, student)
}

func (s *Server) handleDeleteStudent(w http.ResponseWriter, r *http.Request) {
	if err := s.students.DeleteStudent(r.Context(), r.PathValue("id")); err != nil {
		s.failure(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// readStudent validates the body against the student profile schema, then
// decodes it. Interests at HIGH or above promote their domain to preferred.
func (s *Server) readStudent(r *http.Request) (*types.StudentProfile, error) {
	body, err := readBody(r)
	if err != nil {
		return nil, err
	}
	if err := schemas.ValidateDocument(rootschemas.StudentProfile, body); err != nil {
		return nil, err
	}

	var raw types.StudentProfile
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, &ErrValidation{Field: "body", Message: err.Error()}
	}
	return raw.Normalized(), nil
}

// readBody reads a bounded request body.
func readBody(r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read request body: %w", err)
	}
	if len(body) > maxBodyBytes {
		return nil, &ErrValidation{Field: "body", Message: "request body too large"}
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, &ErrValidation{Field: "body", Message: "request body is required"}
	}
	return body, nil
}

// decodeRequest decodes a JSON body into req and runs its validate tags.
func decodeRequest(r *http.Request, req any) error {
	body, err := readBody(r)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, req); err != nil {
		return &ErrValidation{Field: "body", Message: err.Error()}
	}
	if err := types.Validator().Struct(req); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return &ErrValidation{Field: fe.Field(), Message: fieldMessage(fe)}
		}
		return err
	}
	return nil
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

// Package server provides the HTTP REST API for the topic navigator.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/abdul-rehman-0609/FYP-Navigator/internal/availability"
	"github.com/abdul-rehman-0609/FYP-Navigator/internal/recommender"
	"github.com/abdul-rehman-0609/FYP-Navigator/internal/schemas"
	"github.com/abdul-rehman-0609/FYP-Navigator/internal/types"
	"github.com/go-playground/validator/v10"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrIDMismatch indicates the body of an update names a different student than the URL
type ErrIDMismatch struct {
	PathID string
	BodyID string
}

func (e *ErrIDMismatch) Error() string {
	return fmt.Sprintf("student id %s in body does not match %s in path", e.BodyID, e.PathID)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr  *ErrValidation
		mismatchErr    *ErrIDMismatch
		profileErr     *types.InvalidProfileError
		schemaErr      *schemas.ValidationError
		fieldErrs      validator.ValidationErrors
		unknownStudent *recommender.UnknownStudentError
		unknownTopic   *recommender.UnknownTopicError
		notFound       *types.StudentNotFoundError
		exists         *types.StudentExistsError
		claimed        *availability.AlreadyClaimedError
		hasClaim       *availability.StudentHasClaimError
	)

	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &validationErr), errors.As(err, &mismatchErr),
		errors.As(err, &profileErr), errors.As(err, &schemaErr),
		errors.As(err, &fieldErrs), errors.Is(err, recommender.ErrInvalidCount):
		return http.StatusBadRequest
	case errors.As(err, &unknownStudent), errors.As(err, &unknownTopic), errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &exists), errors.As(err, &claimed), errors.As(err, &hasClaim):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

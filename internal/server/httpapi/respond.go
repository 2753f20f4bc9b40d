package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/familyaccount/internal/common"
	"github.com/dmitrijs2005/familyaccount/internal/server/services"
)

const maxJSONBody = 1 << 20

var (
	errBadBody      = &services.Error{Err: common.ErrorValidation, Message: "Invalid request body"}
	errMissingToken = &services.Error{Err: common.ErrorUnauthorized, Message: "Authorization token missing"}
)

func (s *Server) writeJSON(ctx context.Context, w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn(ctx, "write response", "error", err)
	}
}

func (s *Server) writeMessage(ctx context.Context, w http.ResponseWriter, status int, msg string) {
	s.writeJSON(ctx, w, status, messageResponse{Message: msg})
}

// writeError turns a service error into a {message} body with the matching
// status. Errors without a caller-facing message become a generic 500.
func (s *Server) writeError(ctx context.Context, w http.ResponseWriter, err error) {
	var se *services.Error
	if !errors.As(err, &se) {
		s.logger.Error(ctx, "unhandled error", "error", err)
		s.writeMessage(ctx, w, http.StatusInternalServerError, "Something went wrong. Please try again.")
		return
	}
	s.writeMessage(ctx, w, statusFor(se), se.Message)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, common.ErrorValidation):
		return http.StatusBadRequest
	case errors.Is(err, common.ErrorUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, common.ErrorAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// decode reads a size-limited JSON body into v. Unknown fields are
// tolerated.
func decode(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: %w", errBadBody, err)
	}
	return nil
}

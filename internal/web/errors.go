package web

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/runoshun/whiteboard/internal/domain"
)

// statusFor maps an error to an HTTP status code.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrPatchShape),
		errors.Is(err, domain.ErrMalformedTagSyntax),
		errors.Is(err, domain.ErrInvalidTagSpec),
		errors.Is(err, domain.ErrNoFieldsToUpdate),
		errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, domain.ErrEmptyLine),
		errors.Is(err, domain.ErrLineBreak),
		errors.Is(err, domain.ErrBodyIndent):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrTaskNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrVirtualIdentifierAccess):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// errorBody is the JSON error response.
type errorBody struct {
	Error     string `json:"error"`
	Path      string `json:"path,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

func (s *Server) writeError(c *gin.Context, err error) {
	status := statusFor(err)
	body := errorBody{Error: err.Error(), RequestID: c.GetString(requestIDKey)}
	var shapeErr *domain.PatchShapeError
	if errors.As(err, &shapeErr) {
		body.Path = shapeErr.Path
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", requestIDKey, body.RequestID, "error", err)
	}
	c.AbortWithStatusJSON(status, body)
}

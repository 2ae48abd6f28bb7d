package api

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "task-list/internal/errors"
	"task-list/internal/validation"
)

// createTaskRequest is the body of POST /tasks. Title is a pointer so a
// missing field can be told apart from an empty one.
type createTaskRequest struct {
	Title *string `json:"title"`
}

// ErrorResponse is the JSON body written for every failed request
type ErrorResponse struct {
	StatusCode int                     `json:"statusCode"`
	Error      string                  `json:"error"`
	Message    string                  `json:"message"`
	Details    []validation.FieldError `json:"details,omitempty"`
}

func (s *Server) handleListTasks(c *gin.Context) {
	tasks, err := s.tasks.FindAll(c.Request.Context())
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func (s *Server) handleCreateTask(c *gin.Context) {
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		verr := validation.NewValidationError()
		if errors.Is(err, io.EOF) {
			verr.AddRequiredError("title")
		} else {
			verr.AddInvalidTypeError("title", "string")
		}
		s.writeError(c, verr)
		return
	}

	if err := s.validator.ValidateTitleField(req.Title); err != nil {
		s.writeError(c, err)
		return
	}

	task, err := s.tasks.CreateTask(c.Request.Context(), *req.Title)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

func (s *Server) handleCompleteTask(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		s.writeError(c, apperrors.NewInvalidInputError("id", idStr, "must be an integer"))
		return
	}

	if err := s.tasks.CompleteTask(c.Request.Context(), id); err != nil {
		s.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleNoRoute(c *gin.Context) {
	c.JSON(http.StatusNotFound, ErrorResponse{
		StatusCode: http.StatusNotFound,
		Error:      http.StatusText(http.StatusNotFound),
		Message:    "route not found: " + c.Request.Method + " " + c.Request.URL.Path,
	})
}

// StatusFor maps an error to the HTTP status it is reported with
func StatusFor(err error) int {
	if validation.IsValidationError(err) {
		return http.StatusBadRequest
	}
	if appErr, ok := apperrors.AsAppError(err); ok {
		return appErr.Type.HTTPStatus()
	}
	return http.StatusInternalServerError
}

func (s *Server) writeError(c *gin.Context, err error) {
	status := StatusFor(err)
	resp := ErrorResponse{
		StatusCode: status,
		Error:      http.StatusText(status),
	}

	if apperrors.ShouldLogError(err) {
		s.logger.Error("request failed", "status", status, "err", err, "request_id", c.GetString(requestIDKey))
	}

	var verr *validation.ValidationError
	switch {
	case errors.As(err, &verr):
		resp.Message = verr.GetUserFriendlyMessage()
		resp.Details = verr.Errors
	case !apperrors.IsAppError(err):
		// Unknown errors may carry driver detail
		resp.Message = "internal server error"
	default:
		resp.Message = apperrors.GetUserMessage(err)
	}

	c.AbortWithStatusJSON(status, resp)
}

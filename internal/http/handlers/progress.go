package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/studyweave/studyweave-backend/internal/http/response"
	"github.com/studyweave/studyweave-backend/internal/platform/ctxutil"
	"github.com/studyweave/studyweave-backend/internal/platform/logger"
	"github.com/studyweave/studyweave-backend/internal/services"
)

type ProgressHandler struct {
	log        *logger.Logger
	aggregator services.ProgressAggregatorService
}

func NewProgressHandler(log *logger.Logger, aggregator services.ProgressAggregatorService) *ProgressHandler {
	return &ProgressHandler{
		log:        log.With("handler", "ProgressHandler"),
		aggregator: aggregator,
	}
}

// GET /api/progress/students/:studentId/paths/:pathId
func (h *ProgressHandler) StudentPathProgress(c *gin.Context) {
	viewer := ctxutil.GetViewer(c.Request.Context())
	if viewer == nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	studentID, err := uuid.Parse(c.Param("studentId"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_student_id", err)
		return
	}
	pathID, err := uuid.Parse(c.Param("pathId"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_path_id", err)
		return
	}
	percent, err := h.aggregator.StudentPathProgress(c.Request.Context(), studentID, pathID)
	if err != nil {
		response.RespondFailure(c, err)
		return
	}
	response.RespondOK(c, gin.H{"percent": percent})
}

// GET /api/progress/teams/:teamId/paths/:pathId
func (h *ProgressHandler) TeamPathProgress(c *gin.Context) {
	teamID, err := uuid.Parse(c.Param("teamId"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_team_id", err)
		return
	}
	pathID, err := uuid.Parse(c.Param("pathId"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_path_id", err)
		return
	}
	percent, err := h.aggregator.TeamPathProgress(c.Request.Context(), teamID, pathID)
	if err != nil {
		response.RespondFailure(c, err)
		return
	}
	response.RespondOK(c, gin.H{"percent": percent})
}

// GET /api/progress/assignments/:assignmentId
func (h *ProgressHandler) AssignmentAverageProgress(c *gin.Context) {
	assignmentID, err := uuid.Parse(c.Param("assignmentId"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_assignment_id", err)
		return
	}
	percent, err := h.aggregator.AssignmentAverageProgress(c.Request.Context(), assignmentID)
	if err != nil {
		response.RespondFailure(c, err)
		return
	}
	response.RespondOK(c, gin.H{"percent": percent})
}

package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	types "github.com/studyweave/studyweave-backend/internal/domain"
	"github.com/studyweave/studyweave-backend/internal/http/response"
	"github.com/studyweave/studyweave-backend/internal/platform/ctxutil"
	"github.com/studyweave/studyweave-backend/internal/platform/logger"
	"github.com/studyweave/studyweave-backend/internal/services"
)

type ContentHandler struct {
	log       *logger.Logger
	resolver  services.ResolverService
	validator services.ValidatorService
	objects   services.ObjectService
	questions services.QuestionService
}

func NewContentHandler(
	log *logger.Logger,
	resolver services.ResolverService,
	validator services.ValidatorService,
	objects services.ObjectService,
	questions services.QuestionService,
) *ContentHandler {
	return &ContentHandler{
		log:       log.With("handler", "ContentHandler"),
		resolver:  resolver,
		validator: validator,
		objects:   objects,
		questions: questions,
	}
}

// referencePayload is the wire form of a content reference. Exactly one of
// local_id or the triple must be present.
type referencePayload struct {
	LocalID  string `json:"local_id,omitempty"`
	HrUID    string `json:"hruid,omitempty"`
	Language string `json:"language,omitempty"`
	Version  int    `json:"version,omitempty"`
}

func (p referencePayload) toReference() (types.ContentReference, error) {
	const op = "handler.toReference"
	hasLocal := strings.TrimSpace(p.LocalID) != ""
	hasExternal := p.HrUID != "" || p.Language != "" || p.Version != 0
	if hasLocal && hasExternal {
		return types.ContentReference{}, types.InvalidReference(op, "reference mixes a local id with external triple fields")
	}
	if hasLocal {
		id, err := uuid.Parse(p.LocalID)
		if err != nil {
			return types.ContentReference{}, types.InvalidReference(op, "local_id is not a uuid")
		}
		return types.LocalRef(id), nil
	}
	ref := types.ExternalRef(p.HrUID, p.Language, p.Version)
	return ref, ref.CheckWellFormed(op)
}

// POST /api/content/resolve
func (h *ContentHandler) Resolve(c *gin.Context) {
	viewer := ctxutil.GetViewer(c.Request.Context())
	if viewer == nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	var payload referencePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	ref, err := payload.toReference()
	if err != nil {
		response.RespondFailure(c, err)
		return
	}
	rec, err := h.resolver.Resolve(c.Request.Context(), ref, viewer.IsTeacher)
	if err != nil {
		response.RespondFailure(c, err)
		return
	}
	response.RespondOK(c, gin.H{"content": rec})
}

// GET /api/content/:id
func (h *ContentHandler) ResolveByID(c *gin.Context) {
	viewer := ctxutil.GetViewer(c.Request.Context())
	if viewer == nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	rec, err := h.resolver.ResolveByID(c.Request.Context(), c.Param("id"), viewer.IsTeacher)
	if err != nil {
		response.RespondFailure(c, err)
		return
	}
	response.RespondOK(c, gin.H{"content": rec})
}

// POST /api/content/validate
func (h *ContentHandler) Validate(c *gin.Context) {
	var payload referencePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	ref, err := payload.toReference()
	if err != nil {
		response.RespondFailure(c, err)
		return
	}
	if err := h.validator.Validate(c.Request.Context(), ref); err != nil {
		response.RespondFailure(c, err)
		return
	}
	response.RespondOK(c, gin.H{"valid": true})
}

type createObjectPayload struct {
	HrUID            string `json:"hruid" binding:"required"`
	Language         string `json:"language" binding:"required"`
	Version          int    `json:"version" binding:"required"`
	Title            string `json:"title" binding:"required"`
	Description      string `json:"description"`
	TeacherExclusive bool   `json:"teacher_exclusive"`
	Available        *bool  `json:"available"`
}

// POST /api/objects
func (h *ContentHandler) CreateObject(c *gin.Context) {
	viewer := ctxutil.GetViewer(c.Request.Context())
	if viewer == nil || !viewer.IsTeacher {
		response.RespondError(c, http.StatusForbidden, "teacher_only", nil)
		return
	}
	var payload createObjectPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	available := true
	if payload.Available != nil {
		available = *payload.Available
	}
	row, err := h.objects.CreateObject(c.Request.Context(), viewer.UserID, services.CreateObjectInput{
		HrUID:            payload.HrUID,
		Language:         payload.Language,
		Version:          payload.Version,
		Title:            payload.Title,
		Description:      payload.Description,
		TeacherExclusive: payload.TeacherExclusive,
		Available:        available,
	})
	if err != nil {
		response.RespondFailure(c, err)
		return
	}
	response.RespondOK(c, gin.H{"object": row})
}

// DELETE /api/objects/:id
func (h *ContentHandler) DeleteObject(c *gin.Context) {
	viewer := ctxutil.GetViewer(c.Request.Context())
	if viewer == nil || !viewer.IsTeacher {
		response.RespondError(c, http.StatusForbidden, "teacher_only", nil)
		return
	}
	objectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_object_id", err)
		return
	}
	if err := h.objects.DeleteObject(c.Request.Context(), viewer.UserID, objectID); err != nil {
		response.RespondFailure(c, err)
		return
	}
	response.RespondOK(c, gin.H{"deleted": true})
}

// POST /api/objects/:id/done
func (h *ContentHandler) MarkDone(c *gin.Context) {
	viewer := ctxutil.GetViewer(c.Request.Context())
	if viewer == nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	objectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_object_id", err)
		return
	}
	if err := h.objects.MarkDone(c.Request.Context(), viewer.UserID, objectID); err != nil {
		response.RespondFailure(c, err)
		return
	}
	response.RespondOK(c, gin.H{"done": true})
}

type createQuestionPayload struct {
	Body      string           `json:"body" binding:"required"`
	Reference referencePayload `json:"reference"`
}

// POST /api/questions
func (h *ContentHandler) CreateQuestion(c *gin.Context) {
	viewer := ctxutil.GetViewer(c.Request.Context())
	if viewer == nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	var payload createQuestionPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	ref, err := payload.Reference.toReference()
	if err != nil {
		response.RespondFailure(c, err)
		return
	}
	row, err := h.questions.CreateQuestion(c.Request.Context(), viewer.UserID, payload.Body, ref)
	if err != nil {
		response.RespondFailure(c, err)
		return
	}
	response.RespondOK(c, gin.H{"question": row})
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	types "github.com/studyweave/studyweave-backend/internal/domain"
	"github.com/studyweave/studyweave-backend/internal/http/response"
	"github.com/studyweave/studyweave-backend/internal/platform/ctxutil"
	"github.com/studyweave/studyweave-backend/internal/platform/logger"
	"github.com/studyweave/studyweave-backend/internal/services"
)

type PathHandler struct {
	log      *logger.Logger
	graph    services.PathGraphService
	resolver services.ResolverService
}

func NewPathHandler(log *logger.Logger, graph services.PathGraphService, resolver services.ResolverService) *PathHandler {
	return &PathHandler{
		log:      log.With("handler", "PathHandler"),
		graph:    graph,
		resolver: resolver,
	}
}

type nodePayload struct {
	Reference referencePayload `json:"reference"`
	StartNode bool             `json:"start_node"`
}

// POST /api/paths/:id/nodes
func (h *PathHandler) CreateNode(c *gin.Context) {
	viewer := ctxutil.GetViewer(c.Request.Context())
	if viewer == nil || !viewer.IsTeacher {
		response.RespondError(c, http.StatusForbidden, "teacher_only", nil)
		return
	}
	pathID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_path_id", err)
		return
	}
	var payload nodePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	ref, err := payload.Reference.toReference()
	if err != nil {
		response.RespondFailure(c, err)
		return
	}
	node, err := h.graph.CreateNode(c.Request.Context(), pathID, ref, payload.StartNode)
	if err != nil {
		response.RespondFailure(c, err)
		return
	}
	response.RespondOK(c, gin.H{"node": node})
}

type updateNodePayload struct {
	Reference *referencePayload `json:"reference,omitempty"`
	StartNode *bool             `json:"start_node,omitempty"`
}

// PATCH /api/paths/:id/nodes/:nodeId
func (h *PathHandler) UpdateNode(c *gin.Context) {
	viewer := ctxutil.GetViewer(c.Request.Context())
	if viewer == nil || !viewer.IsTeacher {
		response.RespondError(c, http.StatusForbidden, "teacher_only", nil)
		return
	}
	pathID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_path_id", err)
		return
	}
	nodeID, err := uuid.Parse(c.Param("nodeId"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_node_id", err)
		return
	}
	var payload updateNodePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	var ref *types.ContentReference
	if payload.Reference != nil {
		parsed, err := payload.Reference.toReference()
		if err != nil {
			response.RespondFailure(c, err)
			return
		}
		ref = &parsed
	}
	node, err := h.graph.UpdateNode(c.Request.Context(), pathID, nodeID, ref, payload.StartNode)
	if err != nil {
		response.RespondFailure(c, err)
		return
	}
	response.RespondOK(c, gin.H{"node": node})
}

// DELETE /api/paths/:id/nodes/:nodeId
func (h *PathHandler) DeleteNode(c *gin.Context) {
	viewer := ctxutil.GetViewer(c.Request.Context())
	if viewer == nil || !viewer.IsTeacher {
		response.RespondError(c, http.StatusForbidden, "teacher_only", nil)
		return
	}
	pathID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_path_id", err)
		return
	}
	nodeID, err := uuid.Parse(c.Param("nodeId"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_node_id", err)
		return
	}
	if err := h.graph.DeleteNode(c.Request.Context(), pathID, nodeID); err != nil {
		response.RespondFailure(c, err)
		return
	}
	response.RespondOK(c, gin.H{"deleted": true})
}

// GET /api/paths/:id/nodes
func (h *PathHandler) ListNodes(c *gin.Context) {
	pathID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_path_id", err)
		return
	}
	nodes, err := h.graph.ListNodes(c.Request.Context(), pathID)
	if err != nil {
		response.RespondFailure(c, err)
		return
	}
	response.RespondOK(c, gin.H{"nodes": nodes})
}

// GET /api/paths/:id/content
func (h *PathHandler) ResolveContent(c *gin.Context) {
	viewer := ctxutil.GetViewer(c.Request.Context())
	if viewer == nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	pathID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_path_id", err)
		return
	}
	records, err := h.resolver.ResolveForPath(c.Request.Context(), pathID, viewer.IsTeacher)
	if err != nil {
		response.RespondFailure(c, err)
		return
	}
	response.RespondOK(c, gin.H{"content": records})
}

// GET /api/external-paths/:id/nodes
func (h *PathHandler) ListExternalPathNodes(c *gin.Context) {
	nodes, err := h.resolver.ResolveExternalPathNodes(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.RespondFailure(c, err)
		return
	}
	response.RespondOK(c, gin.H{"nodes": nodes})
}

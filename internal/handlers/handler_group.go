package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/cari_ledger/internal/core/ports/services"
	"github.com/SscSPs/cari_ledger/internal/dto"
	"github.com/SscSPs/cari_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// groupHandler handles HTTP requests related to account groups.
type groupHandler struct {
	baseHandler
	groupService portssvc.GroupSvcFacade
}

func registerGroupRoutes(rg *gin.RouterGroup, base baseHandler, groupService portssvc.GroupSvcFacade) {
	h := &groupHandler{baseHandler: base, groupService: groupService}

	groups := rg.Group("/groups")
	{
		groups.GET("", h.listGroups)
		groups.POST("", h.createGroup)
		groups.GET("/:id", h.getGroup)
		groups.PUT("/:id", h.updateGroup)
		groups.DELETE("/:id", h.deleteGroup)
		groups.GET("/:id/dependents", h.countDependents)
	}
}

// listGroups godoc
// @Summary List groups
// @Description Lists all account groups ordered by name
// @Tags groups
// @Produce json
// @Success 200 {object} dto.Envelope{data=[]dto.GroupResponse}
// @Failure 500 {object} dto.Envelope
// @Security BearerAuth
// @Router /groups [get]
func (h *groupHandler) listGroups(c *gin.Context) {
	groups, err := h.groupService.ListGroups(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "Failed to list groups")
		return
	}
	c.JSON(http.StatusOK, dto.OKList(dto.ToGroupResponses(groups)))
}

// createGroup godoc
// @Summary Create a group
// @Tags groups
// @Accept json
// @Produce json
// @Param group body dto.GroupRequest true "Group name"
// @Success 201 {object} dto.Envelope{data=dto.GroupResponse}
// @Failure 400 {object} dto.Envelope "Validation error or duplicate name"
// @Failure 500 {object} dto.Envelope
// @Security BearerAuth
// @Router /groups [post]
func (h *groupHandler) createGroup(c *gin.Context) {
	var req dto.GroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBindError(c, err)
		return
	}

	group, err := h.groupService.CreateGroup(c.Request.Context(), req, middleware.ActorID(c))
	if err != nil {
		h.respondError(c, err, "Failed to create group")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Group created", slog.String("group_id", group.GroupID))
	c.JSON(http.StatusCreated, dto.OK(dto.ToGroupResponse(group)))
}

// getGroup godoc
// @Summary Get a group
// @Tags groups
// @Produce json
// @Param id path string true "Group ID"
// @Success 200 {object} dto.Envelope{data=dto.GroupResponse}
// @Failure 404 {object} dto.Envelope
// @Security BearerAuth
// @Router /groups/{id} [get]
func (h *groupHandler) getGroup(c *gin.Context) {
	group, err := h.groupService.GetGroupByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err, "Failed to retrieve group")
		return
	}
	c.JSON(http.StatusOK, dto.OK(dto.ToGroupResponse(group)))
}

// updateGroup godoc
// @Summary Rename a group
// @Tags groups
// @Accept json
// @Produce json
// @Param id path string true "Group ID"
// @Param group body dto.GroupRequest true "New name"
// @Success 200 {object} dto.Envelope{data=dto.GroupResponse}
// @Failure 400 {object} dto.Envelope
// @Failure 404 {object} dto.Envelope
// @Security BearerAuth
// @Router /groups/{id} [put]
func (h *groupHandler) updateGroup(c *gin.Context) {
	var req dto.GroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBindError(c, err)
		return
	}

	group, err := h.groupService.UpdateGroup(c.Request.Context(), c.Param("id"), req, middleware.ActorID(c))
	if err != nil {
		h.respondError(c, err, "Failed to update group")
		return
	}
	c.JSON(http.StatusOK, dto.OK(dto.ToGroupResponse(group)))
}

// deleteGroup godoc
// @Summary Delete a group
// @Description Deletes a group that no active account references
// @Tags groups
// @Produce json
// @Param id path string true "Group ID"
// @Success 200 {object} dto.Envelope
// @Failure 400 {object} dto.Envelope "Group still has linked accounts"
// @Failure 404 {object} dto.Envelope
// @Security BearerAuth
// @Router /groups/{id} [delete]
func (h *groupHandler) deleteGroup(c *gin.Context) {
	groupID := c.Param("id")
	if err := h.groupService.DeleteGroup(c.Request.Context(), groupID); err != nil {
		h.respondError(c, err, "Failed to delete group")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Group deleted", slog.String("group_id", groupID))
	c.JSON(http.StatusOK, dto.OK(nil))
}

// countDependents godoc
// @Summary Count accounts linked to a group
// @Tags groups
// @Produce json
// @Param id path string true "Group ID"
// @Success 200 {object} dto.Envelope{data=dto.GroupDependentsResponse}
// @Failure 404 {object} dto.Envelope
// @Security BearerAuth
// @Router /groups/{id}/dependents [get]
func (h *groupHandler) countDependents(c *gin.Context) {
	groupID := c.Param("id")
	n, err := h.groupService.CountLinkedAccounts(c.Request.Context(), groupID)
	if err != nil {
		h.respondError(c, err, "Failed to count linked accounts")
		return
	}
	c.JSON(http.StatusOK, dto.OK(dto.GroupDependentsResponse{GroupID: groupID, LinkedAccounts: n}))
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/proposalgen/proposal-backend/internal/dto"
	"github.com/proposalgen/proposal-backend/internal/export"
	"github.com/proposalgen/proposal-backend/internal/http/handlers/common"
	"github.com/proposalgen/proposal-backend/internal/pkg/apperror"
	"github.com/proposalgen/proposal-backend/internal/service"
)

// ProposalHandler отвечает за генерацию, просмотр и выгрузку предложений.
type ProposalHandler struct {
	proposals *service.ProposalService
}

// NewProposalHandler создаёт хэндлер.
func NewProposalHandler(proposals *service.ProposalService) *ProposalHandler {
	return &ProposalHandler{proposals: proposals}
}

// Create обрабатывает POST /api/proposals.
func (h *ProposalHandler) Create(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	var req dto.CreateProposalRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	proposal, err := h.proposals.Submit(c.Request.Context(), userID, req.ToModel())
	if err != nil {
		respondAppError(c, err, "")
		return
	}

	resp := dto.NewProposalResponse(proposal, formatNames())
	c.Header("Location", proposalPath(proposal.ID))
	c.JSON(http.StatusCreated, resp)
}

// List обрабатывает GET /api/proposals.
func (h *ProposalHandler) List(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	items, err := h.proposals.List(c.Request.Context(), userID)
	if err != nil {
		respondAppError(c, err, "")
		return
	}

	c.JSON(http.StatusOK, dto.ProposalListResponse{Proposals: items, Total: len(items)})
}

// Get обрабатывает GET /api/proposals/:id.
// Чужое и несуществующее предложение дают одинаковый ответ 403.
func (h *ProposalHandler) Get(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	id, err := common.ParseIDParam(c, "id")
	if err != nil {
		common.RespondErrorWithRedirect(c, http.StatusBadRequest, err.Error(), proposalsPath)
		return
	}

	proposal, err := h.proposals.Get(c.Request.Context(), userID, id)
	if err != nil {
		respondAppError(c, err, proposalsPath)
		return
	}

	c.JSON(http.StatusOK, dto.NewProposalResponse(proposal, formatNames()))
}

// Download обрабатывает GET /api/proposals/:id/download/:format.
// Файл отдаётся как вложение и удаляется после отправки.
func (h *ProposalHandler) Download(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	id, err := common.ParseIDParam(c, "id")
	if err != nil {
		common.RespondErrorWithRedirect(c, http.StatusBadRequest, err.Error(), proposalsPath)
		return
	}

	artifact, err := h.proposals.Download(c.Request.Context(), userID, id, c.Param("format"))
	if err != nil {
		redirect := proposalPath(id)
		if apperror.IsForbidden(err) {
			redirect = proposalsPath
		}
		respondAppError(c, err, redirect)
		return
	}
	defer h.proposals.Release(artifact)

	c.Header("Content-Type", artifact.ContentType)
	c.FileAttachment(artifact.Path, artifact.Filename)
}

func formatNames() []string {
	names := make([]string, 0, len(export.Formats))
	for _, f := range export.Formats {
		names = append(names, string(f))
	}
	return names
}

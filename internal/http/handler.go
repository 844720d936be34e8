package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nurpe/outvoice/internal/http/middleware"
	"github.com/nurpe/outvoice/internal/model"
	"github.com/nurpe/outvoice/internal/service"
)

type Handler struct {
	auth      *service.AuthService
	proposals *service.ProposalService
	templates *service.TemplateService
	exports   *service.ExportService
	log       zerolog.Logger
}

func NewHandler(
	auth *service.AuthService,
	proposals *service.ProposalService,
	templates *service.TemplateService,
	exports *service.ExportService,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		auth:      auth,
		proposals: proposals,
		templates: templates,
		exports:   exports,
		log:       log,
	}
}

func (h *Handler) Register(router *gin.Engine, authMiddleware gin.HandlerFunc) {
	router.POST("/auth/register", h.register)
	router.POST("/auth/login", h.login)

	protected := router.Group("/")
	protected.Use(authMiddleware)
	protected.GET("/templates", h.listTemplates)
	protected.GET("/templates/:id", h.getTemplate)
	protected.POST("/proposals", h.createProposal)
	protected.GET("/proposals", h.listProposals)
	protected.GET("/proposals/:id", h.getProposal)
	protected.PUT("/proposals/:id", h.updateProposal)
	protected.DELETE("/proposals/:id", h.deleteProposal)
	protected.POST("/proposals/:id/sections/:sectionID/toggle-mode", h.toggleSectionMode)
	protected.POST("/proposals/:id/export/pdf", h.exportPDF)
	protected.POST("/proposals/:id/export/xlsx", h.exportExcel)
}

type registerRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name"`
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.auth.Register(c.Request.Context(), service.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": result.User, "accessToken": result.AccessToken})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": result.User, "accessToken": result.AccessToken})
}

func (h *Handler) listTemplates(c *gin.Context) {
	templates, err := h.templates.List(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"templates": templates})
}

func (h *Handler) getTemplate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid template id"})
		return
	}

	template, err := h.templates.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, template)
}

type createProposalRequest struct {
	Title          string                `json:"title" binding:"required"`
	TemplateID     string                `json:"templateId"`
	Orientation    string                `json:"orientation"`
	TitlePageStyle *model.TitlePageStyle `json:"titlePageStyle"`
}

func (h *Handler) createProposal(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	var req createProposalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := service.CreateProposalInput{
		Title:          req.Title,
		Orientation:    model.Orientation(req.Orientation),
		TitlePageStyle: req.TitlePageStyle,
	}
	if raw := strings.TrimSpace(req.TemplateID); raw != "" {
		templateID, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid templateId"})
			return
		}
		input.TemplateID = &templateID
	}

	proposal, err := h.proposals.Create(c.Request.Context(), principal, input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, proposal)
}

func (h *Handler) listProposals(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	proposals, err := h.proposals.List(c.Request.Context(), principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"proposals": proposals})
}

func (h *Handler) getProposal(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid proposal id"})
		return
	}

	proposal, err := h.proposals.Get(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, proposal)
}

type updateProposalRequest struct {
	Title          *string                 `json:"title"`
	Sections       []model.ProposalSection `json:"sections"`
	Orientation    *string                 `json:"orientation"`
	TitlePageStyle *model.TitlePageStyle   `json:"titlePageStyle"`
	Status         *string                 `json:"status"`
}

func (h *Handler) updateProposal(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid proposal id"})
		return
	}

	var req updateProposalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := service.UpdateProposalInput{
		Title:          req.Title,
		Sections:       req.Sections,
		TitlePageStyle: req.TitlePageStyle,
	}
	if req.Orientation != nil {
		orientation := model.Orientation(*req.Orientation)
		input.Orientation = &orientation
	}
	if req.Status != nil {
		status := model.ProposalStatus(*req.Status)
		input.Status = &status
	}

	proposal, err := h.proposals.Update(c.Request.Context(), principal, id, input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, proposal)
}

func (h *Handler) deleteProposal(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid proposal id"})
		return
	}

	if err := h.proposals.Delete(c.Request.Context(), principal, id); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) toggleSectionMode(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid proposal id"})
		return
	}
	sectionID, err := uuid.Parse(c.Param("sectionID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid section id"})
		return
	}

	proposal, err := h.proposals.ToggleSectionMode(c.Request.Context(), principal, id, sectionID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, proposal)
}

type exportRequest struct {
	Filename    string `json:"filename"`
	Format      string `json:"format"`
	Orientation string `json:"orientation"`
}

func (h *Handler) exportPDF(c *gin.Context) {
	h.export(c, h.exports.ExportPDF)
}

func (h *Handler) exportExcel(c *gin.Context) {
	h.export(c, h.exports.ExportExcel)
}

type exportFunc func(ctx context.Context, principal model.Principal, id uuid.UUID, opts service.ExportOptions) (*service.ExportResult, error)

func (h *Handler) export(c *gin.Context, run exportFunc) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid proposal id"})
		return
	}

	// Body is optional; defaults come from the proposal and config.
	var req exportRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	result, err := run(c.Request.Context(), principal, id, service.ExportOptions{
		Filename:    req.Filename,
		Format:      req.Format,
		Orientation: req.Orientation,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	c.Data(http.StatusOK, result.ContentType, result.Content)
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrExportFailed):
		h.log.Error().Err(err).Msg("export failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		h.log.Error().Err(err).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

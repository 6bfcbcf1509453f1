package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/L1nkStart/cgm-system-v1-sub000/middlewares"
	"github.com/L1nkStart/cgm-system-v1-sub000/models"
	"github.com/L1nkStart/cgm-system-v1-sub000/services"
)

type CaseHandler struct {
	service *services.CaseService
}

func NewCaseHandler(service *services.CaseService) *CaseHandler {
	return &CaseHandler{service: service}
}

// splitParam turns a comma-separated query value into a list, dropping
// empty segments.
func splitParam(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func intParam(c *gin.Context, name string) int {
	value, err := strconv.Atoi(c.DefaultQuery(name, "0"))
	if err != nil {
		return 0
	}
	return value
}

// ListCases returns the page of cases visible to the session, with
// pagination metadata.
func (h *CaseHandler) ListCases(c *gin.Context) {
	session, ok := middlewares.SessionFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Session not found"})
		return
	}

	params := services.ListParams{
		AnalystID: c.DefaultQuery("analystId", ""),
		Statuses:  splitParam(c.DefaultQuery("status", "")),
		States:    splitParam(c.DefaultQuery("state", "")),
		Page:      intParam(c, "page"),
		Limit:     intParam(c, "limit"),
	}

	views, pagination, err := h.service.List(c.Request.Context(), session, params)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	middlewares.RespondJSON(c, gin.H{"cases": views, "pagination": pagination}, http.StatusOK)
}

func (h *CaseHandler) GetCase(c *gin.Context) {
	session, ok := middlewares.SessionFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Session not found"})
		return
	}

	view, err := h.service.Get(c.Request.Context(), session, c.Param("case_id"))
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	middlewares.RespondJSON(c, view, http.StatusOK)
}

func (h *CaseHandler) CreateCase(c *gin.Context) {
	session, ok := middlewares.SessionFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Session not found"})
		return
	}

	var payload models.Case
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	created, err := h.service.Create(c.Request.Context(), session, &payload)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	middlewares.RespondJSON(c, created, http.StatusCreated)
}

func (h *CaseHandler) UpdateCase(c *gin.Context) {
	session, ok := middlewares.SessionFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Session not found"})
		return
	}

	var payload models.CaseUpdate
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	updated, err := h.service.Update(c.Request.Context(), session, c.Param("case_id"), payload)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	middlewares.RespondJSON(c, updated, http.StatusOK)
}

// AuditCase records the auditor's verdict on an attended case.
func (h *CaseHandler) AuditCase(c *gin.Context) {
	session, ok := middlewares.SessionFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Session not found"})
		return
	}

	var payload struct {
		Approved bool   `json:"approved"`
		Notes    string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	audited, err := h.service.Audit(c.Request.Context(), session, c.Param("case_id"), payload.Approved, payload.Notes)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	middlewares.RespondJSON(c, audited, http.StatusOK)
}

// UploadDocuments attaches file references to the case.
func (h *CaseHandler) UploadDocuments(c *gin.Context) {
	session, ok := middlewares.SessionFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Session not found"})
		return
	}

	var payload struct {
		Category  string            `json:"category"`
		Documents []models.Document `json:"documents"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if payload.Category == "" {
		payload.Category = services.DocumentCategoryMedical
	}
	if len(payload.Documents) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No documents provided"})
		return
	}

	updated, err := h.service.UploadDocuments(c.Request.Context(), session, c.Param("case_id"), payload.Category, payload.Documents)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	middlewares.RespondJSON(c, updated, http.StatusOK)
}

// GeneratePreInvoice sets the cost breakdown and moves the case to
// Pre-facturado.
func (h *CaseHandler) GeneratePreInvoice(c *gin.Context) {
	session, ok := middlewares.SessionFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Session not found"})
		return
	}

	var payload struct {
		ClinicCost     float64 `json:"clinicCost"`
		CGMServiceCost float64 `json:"cgmServiceCost"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	updated, err := h.service.GeneratePreInvoice(c.Request.Context(), session, c.Param("case_id"), payload.ClinicCost, payload.CGMServiceCost)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	middlewares.RespondJSON(c, updated, http.StatusOK)
}

// GetPreInvoice returns the pre-invoice projection of an audited case.
func (h *CaseHandler) GetPreInvoice(c *gin.Context) {
	session, ok := middlewares.SessionFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Session not found"})
		return
	}

	view, err := h.service.GetPreInvoice(c.Request.Context(), session, c.Param("case_id"))
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	middlewares.RespondJSON(c, view, http.StatusOK)
}

func (h *CaseHandler) GetHistory(c *gin.Context) {
	session, ok := middlewares.SessionFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Session not found"})
		return
	}

	entries, err := h.service.History(c.Request.Context(), session, c.Param("case_id"))
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	middlewares.RespondJSON(c, entries, http.StatusOK)
}

func (h *CaseHandler) DeleteCase(c *gin.Context) {
	session, ok := middlewares.SessionFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Session not found"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), session, c.Param("case_id")); err != nil {
		middlewares.RespondError(c, err)
		return
	}
	middlewares.RespondJSON(c, gin.H{"message": "Case deleted"}, http.StatusOK)
}

package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/L1nkStart/cgm-system-v1-sub000/middlewares"
	"github.com/L1nkStart/cgm-system-v1-sub000/models"
	"github.com/L1nkStart/cgm-system-v1-sub000/services"
)

type InsuranceHolderHandler struct {
	service *services.InsuranceHolderService
}

func NewInsuranceHolderHandler(service *services.InsuranceHolderService) *InsuranceHolderHandler {
	return &InsuranceHolderHandler{service: service}
}

func (h *InsuranceHolderHandler) CreateHolder(c *gin.Context) {
	var holder models.InsuranceHolder
	if err := c.ShouldBindJSON(&holder); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	created, err := h.service.Create(c.Request.Context(), &holder)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	middlewares.RespondJSON(c, created, http.StatusCreated)
}

func (h *InsuranceHolderHandler) GetHolder(c *gin.Context) {
	holder, err := h.service.GetByID(c.Request.Context(), c.Param("holder_id"))
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	middlewares.RespondJSON(c, holder, http.StatusOK)
}

func (h *InsuranceHolderHandler) GetAllHolders(c *gin.Context) {
	holders, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	middlewares.RespondJSON(c, holders, http.StatusOK)
}

func (h *InsuranceHolderHandler) UpdateHolder(c *gin.Context) {
	var holder models.InsuranceHolder
	if err := c.ShouldBindJSON(&holder); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	updated, err := h.service.Update(c.Request.Context(), c.Param("holder_id"), &holder)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	middlewares.RespondJSON(c, updated, http.StatusOK)
}

func (h *InsuranceHolderHandler) DeleteHolder(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("holder_id")); err != nil {
		middlewares.RespondError(c, err)
		return
	}
	middlewares.RespondJSON(c, gin.H{"message": "Insurance holder deleted"}, http.StatusOK)
}

// CreateRelationship links a holder to a patient.
func (h *InsuranceHolderHandler) CreateRelationship(c *gin.Context) {
	var rel models.HolderPatientRelationship
	if err := c.ShouldBindJSON(&rel); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	created, err := h.service.CreateRelationship(c.Request.Context(), &rel)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	middlewares.RespondJSON(c, created, http.StatusCreated)
}

// ListPatientRelationships returns a patient's holder links.
func (h *InsuranceHolderHandler) ListPatientRelationships(c *gin.Context) {
	rels, err := h.service.ListRelationships(c.Request.Context(), c.Param("patient_id"))
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	middlewares.RespondJSON(c, rels, http.StatusOK)
}

func (h *InsuranceHolderHandler) DeleteRelationship(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("relationship_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid relationship ID"})
		return
	}

	if err := h.service.DeleteRelationship(c.Request.Context(), uint(id)); err != nil {
		middlewares.RespondError(c, err)
		return
	}
	middlewares.RespondJSON(c, gin.H{"message": "Relationship deleted"}, http.StatusOK)
}

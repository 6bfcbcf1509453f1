package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/L1nkStart/cgm-system-v1-sub000/middlewares"
	"github.com/L1nkStart/cgm-system-v1-sub000/models"
	"github.com/L1nkStart/cgm-system-v1-sub000/services"
)

type BaremoHandler struct {
	service *services.BaremoService
}

func NewBaremoHandler(service *services.BaremoService) *BaremoHandler {
	return &BaremoHandler{service: service}
}

func (h *BaremoHandler) CreateBaremo(c *gin.Context) {
	var baremo models.Baremo
	if err := c.ShouldBindJSON(&baremo); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	created, err := h.service.Create(c.Request.Context(), &baremo)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	middlewares.RespondJSON(c, created, http.StatusCreated)
}

func (h *BaremoHandler) GetBaremo(c *gin.Context) {
	baremo, err := h.service.GetByID(c.Request.Context(), c.Param("baremo_id"))
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	middlewares.RespondJSON(c, baremo, http.StatusOK)
}

func (h *BaremoHandler) GetAllBaremos(c *gin.Context) {
	baremos, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	middlewares.RespondJSON(c, baremos, http.StatusOK)
}

func (h *BaremoHandler) UpdateBaremo(c *gin.Context) {
	var baremo models.Baremo
	if err := c.ShouldBindJSON(&baremo); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	updated, err := h.service.Update(c.Request.Context(), c.Param("baremo_id"), &baremo)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	middlewares.RespondJSON(c, updated, http.StatusOK)
}

func (h *BaremoHandler) DeleteBaremo(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("baremo_id")); err != nil {
		middlewares.RespondError(c, err)
		return
	}
	middlewares.RespondJSON(c, gin.H{"message": "Baremo deleted"}, http.StatusOK)
}

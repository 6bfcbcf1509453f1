package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/L1nkStart/cgm-system-v1-sub000/middlewares"
	"github.com/L1nkStart/cgm-system-v1-sub000/models"
	"github.com/L1nkStart/cgm-system-v1-sub000/services"
)

type ClientHandler struct {
	service *services.ClientService
}

func NewClientHandler(service *services.ClientService) *ClientHandler {
	return &ClientHandler{service: service}
}

func (h *ClientHandler) CreateClient(c *gin.Context) {
	var client models.Client
	if err := c.ShouldBindJSON(&client); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	created, err := h.service.Create(c.Request.Context(), &client)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	middlewares.RespondJSON(c, created, http.StatusCreated)
}

func (h *ClientHandler) GetClient(c *gin.Context) {
	client, err := h.service.GetByID(c.Request.Context(), c.Param("client_id"))
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	middlewares.RespondJSON(c, client, http.StatusOK)
}

func (h *ClientHandler) GetAllClients(c *gin.Context) {
	clients, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	middlewares.RespondJSON(c, clients, http.StatusOK)
}

func (h *ClientHandler) UpdateClient(c *gin.Context) {
	var client models.Client
	if err := c.ShouldBindJSON(&client); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	updated, err := h.service.Update(c.Request.Context(), c.Param("client_id"), &client)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	middlewares.RespondJSON(c, updated, http.StatusOK)
}

func (h *ClientHandler) DeleteClient(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("client_id")); err != nil {
		middlewares.RespondError(c, err)
		return
	}
	middlewares.RespondJSON(c, gin.H{"message": "Client deleted"}, http.StatusOK)
}

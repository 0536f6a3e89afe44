package handlers

import (
	"net/http"

	"barbershop/models"
	"barbershop/services/catalog"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// EmployeeHandler is the owner's CRUD over the shop's professionals.
type EmployeeHandler struct {
	Catalog catalog.CatalogService
}

func NewEmployeeHandler(cat catalog.CatalogService) *EmployeeHandler {
	return &EmployeeHandler{Catalog: cat}
}

func (h *EmployeeHandler) List(c *gin.Context) {
	pros, err := h.Catalog.Professionals(c.Request.Context(), ownerShopID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pros)
}

func (h *EmployeeHandler) Get(c *gin.Context) {
	p, err := h.Catalog.FindProfessional(c.Request.Context(), ownerShopID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *EmployeeHandler) Create(c *gin.Context) {
	var input models.Professional
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	p, err := h.Catalog.CreateProfessional(c.Request.Context(), ownerShopID(c), input)
	if err != nil {
		respondError(c, err)
		return
	}
	getLogger(c).Info("Employee created", zap.String("shopID", ownerShopID(c)), zap.String("id", p.ID))
	c.JSON(http.StatusCreated, p)
}

func (h *EmployeeHandler) Update(c *gin.Context) {
	var input models.Professional
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	p, err := h.Catalog.UpdateProfessional(c.Request.Context(), ownerShopID(c), c.Param("id"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *EmployeeHandler) Delete(c *gin.Context) {
	if err := h.Catalog.DeleteProfessional(c.Request.Context(), ownerShopID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"storyspark-api/application/ports/outbound"
	"storyspark-api/domain"
	"storyspark-api/infrastructure/gin_interface/dto"
)

type ChildrenController interface {
	RegisterRoutes(g *gin.Engine)
}

type childrenController struct {
	logger   outbound.LoggerPort
	children outbound.ChildRegistryPort
}

func NewChildrenController(logger outbound.LoggerPort, children outbound.ChildRegistryPort) ChildrenController {
	return &childrenController{
		logger:   logger,
		children: children,
	}
}

func (c *childrenController) RegisterRoutes(g *gin.Engine) {
	g.GET("/api/children", c.ListChildren)
	g.GET("/api/children/:id", c.GetChild)
	g.POST("/api/children", c.CreateChild)
}

func (c *childrenController) ListChildren(ctx *gin.Context) {
	children, err := c.children.List(ctx.Request.Context())
	if err != nil {
		c.logger.Error(err, "failed to list children")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	ctx.JSON(http.StatusOK, children)
}

func (c *childrenController) GetChild(ctx *gin.Context) {
	child, err := c.children.Get(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrChildNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.logger.Error(err, "failed to load child")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	ctx.JSON(http.StatusOK, child)
}

func (c *childrenController) CreateChild(ctx *gin.Context) {
	var req dto.CreateChildRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	child, err := c.children.Create(ctx.Request.Context(), outbound.CreateChildParams{
		Name:      req.Name,
		Age:       req.Age,
		Interests: req.Interests,
	})
	if err != nil {
		c.logger.Error(err, "failed to create child")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	ctx.JSON(http.StatusCreated, child)
}

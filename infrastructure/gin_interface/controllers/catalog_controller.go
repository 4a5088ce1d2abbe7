package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"storyspark-api/application/ports/outbound"
	"storyspark-api/domain"
)

type CatalogController interface {
	RegisterRoutes(g *gin.Engine)
}

type catalogController struct {
	catalog outbound.CatalogPort
}

func NewCatalogController(catalog outbound.CatalogPort) CatalogController {
	return &catalogController{
		catalog: catalog,
	}
}

func (c *catalogController) RegisterRoutes(g *gin.Engine) {
	g.GET("/api/characters", c.ListCharacters)
	g.GET("/api/characters/:id", c.GetCharacter)
	g.GET("/api/scenarios", c.ListScenarios)
}

func (c *catalogController) ListCharacters(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.catalog.ListCharacters())
}

func (c *catalogController) GetCharacter(ctx *gin.Context) {
	character, err := c.catalog.GetCharacter(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrCharacterNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	ctx.JSON(http.StatusOK, character)
}

func (c *catalogController) ListScenarios(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.catalog.ListScenarios())
}

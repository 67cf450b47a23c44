package handler

import (
	"net/http"

	"app/internal/catalog"

	"github.com/labstack/echo/v4"
)

// /products の公開API。マスタは静的カタログ
type ProductHandler struct{}

func NewProductHandler() *ProductHandler {
	return &ProductHandler{}
}

func (h *ProductHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/products", h.list)
	e.GET("/products/:id", h.detail)
}

func (h *ProductHandler) list(c echo.Context) error {
	category := c.QueryParam("category")
	return c.JSON(http.StatusOK, catalog.ListByCategory(category))
}

func (h *ProductHandler) detail(c echo.Context) error {
	p, ok := catalog.FindByID(c.Param("id"))
	if !ok {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "Product not found"})
	}
	return c.JSON(http.StatusOK, p)
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/appzeto/food-admin/internal/core/ports"
)

type AboutHandler struct {
	service ports.AboutService
}

func NewAboutHandler(service ports.AboutService) *AboutHandler {
	return &AboutHandler{service: service}
}

// Public handles GET /api/about/public.
//
// @Summary      Public about page
// @Tags         about
// @Produce      json
// @Success      200  {object}  domain.About
// @Router       /api/about/public [get]
func (h *AboutHandler) Public(c echo.Context) error {
	about, err := h.service.GetPublic(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, about)
}

// Get handles GET /api/admin/about. The default page is stored on first read.
//
// @Summary      Admin about page
// @Tags         about
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.About
// @Router       /api/admin/about [get]
func (h *AboutHandler) Get(c echo.Context) error {
	about, err := h.service.GetForAdmin(c.Request().Context(), ctxAdminID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, about)
}

// Update handles PUT /api/admin/about.
//
// @Summary      Update the about page
// @Tags         about
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateAboutRequest  true  "About content"
// @Success      200   {object}  domain.About
// @Failure      400   {object}  errorResponse
// @Router       /api/admin/about [put]
func (h *AboutHandler) Update(c echo.Context) error {
	var req updateAboutRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	about, err := h.service.Update(c.Request().Context(), req.toInput(ctxAdminID(c)))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, about)
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/appzeto/food-admin/internal/core/ports"
)

// CityHandler serves the admin city endpoints. Service errors are rendered by
// the API error handler.
type CityHandler struct {
	service ports.CityService
}

func NewCityHandler(service ports.CityService) *CityHandler {
	return &CityHandler{service: service}
}

// List handles GET /api/admin/cities.
//
// @Summary      List cities
// @Tags         admin-cities
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "active or inactive"
// @Param        search  query     string  false  "Case-insensitive name search"
// @Success      200     {object}  cityListResponse
// @Failure      401     {object}  errorResponse
// @Router       /api/admin/cities [get]
func (h *CityHandler) List(c echo.Context) error {
	cities, err := h.service.ListCities(c.Request().Context(), ports.CityFilter{
		Status: c.QueryParam("status"),
		Search: c.QueryParam("search"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cityListResponse{Cities: cities, Total: len(cities)})
}

// Create handles POST /api/admin/cities.
//
// @Summary      Create a city
// @Tags         admin-cities
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createCityRequest  true  "City"
// @Success      201   {object}  domain.City
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/admin/cities [post]
func (h *CityHandler) Create(c echo.Context) error {
	var req createCityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	city, err := h.service.CreateCity(c.Request().Context(), ports.CreateCityInput{
		CityName:  req.CityName,
		Status:    req.Status,
		CreatedBy: ctxAdminID(c),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, city)
}

// Update handles PUT /api/admin/cities/:id.
//
// @Summary      Update a city
// @Tags         admin-cities
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "City id"
// @Param        body  body      updateCityRequest  true  "Fields to change"
// @Success      200   {object}  domain.City
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/admin/cities/{id} [put]
func (h *CityHandler) Update(c echo.Context) error {
	var req updateCityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	city, err := h.service.UpdateCity(c.Request().Context(), c.Param("id"), ports.UpdateCityInput{
		CityName: req.CityName,
		Status:   req.Status,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, city)
}

// Delete handles DELETE /api/admin/cities/:id.
//
// @Summary      Delete a city without hubs
// @Tags         admin-cities
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "City id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /api/admin/cities/{id} [delete]
func (h *CityHandler) Delete(c echo.Context) error {
	if err := h.service.DeleteCity(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "city deleted"})
}

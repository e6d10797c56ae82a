package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/appzeto/food-admin/internal/core/ports"
)

type HubHandler struct {
	service ports.HubService
}

func NewHubHandler(service ports.HubService) *HubHandler {
	return &HubHandler{service: service}
}

// List handles GET /api/admin/hubs.
//
// @Summary      List hubs with their city names
// @Tags         admin-hubs
// @Produce      json
// @Security     BearerAuth
// @Param        cityId  query     string  false  "City id"
// @Param        status  query     string  false  "active or inactive"
// @Param        search  query     string  false  "Case-insensitive name search"
// @Success      200     {object}  hubListResponse
// @Router       /api/admin/hubs [get]
func (h *HubHandler) List(c echo.Context) error {
	hubs, err := h.service.ListHubs(c.Request().Context(), ports.HubFilter{
		CityID: c.QueryParam("cityId"),
		Status: c.QueryParam("status"),
		Search: c.QueryParam("search"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, hubListResponse{Hubs: hubs, Total: len(hubs)})
}

// Create handles POST /api/admin/hubs.
//
// @Summary      Create a hub
// @Tags         admin-hubs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createHubRequest  true  "Hub"
// @Success      201   {object}  domain.Hub
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/admin/hubs [post]
func (h *HubHandler) Create(c echo.Context) error {
	var req createHubRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	hub, err := h.service.CreateHub(c.Request().Context(), ports.CreateHubInput{
		CityID:              req.CityID,
		HubName:             req.HubName,
		HubArea:             req.HubArea,
		ServiceablePincodes: req.ServiceablePincodes,
		Status:              req.Status,
		CreatedBy:           ctxAdminID(c),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, hub)
}

// Update handles PUT /api/admin/hubs/:id.
//
// @Summary      Update a hub
// @Tags         admin-hubs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string            true  "Hub id"
// @Param        body  body      updateHubRequest  true  "Fields to change"
// @Success      200   {object}  domain.Hub
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/admin/hubs/{id} [put]
func (h *HubHandler) Update(c echo.Context) error {
	var req updateHubRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	hub, err := h.service.UpdateHub(c.Request().Context(), c.Param("id"), ports.UpdateHubInput{
		CityID:              req.CityID,
		HubName:             req.HubName,
		HubArea:             req.HubArea,
		ServiceablePincodes: req.ServiceablePincodes,
		Status:              req.Status,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, hub)
}

// Delete handles DELETE /api/admin/hubs/:id.
//
// @Summary      Delete a hub
// @Tags         admin-hubs
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Hub id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/admin/hubs/{id} [delete]
func (h *HubHandler) Delete(c echo.Context) error {
	if err := h.service.DeleteHub(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "hub deleted"})
}

package payment

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/patientportal/portal/internal/platform/apperror"
	"github.com/patientportal/portal/pkg/pagination"
)

// Handler exposes payment operations over HTTP.
type Handler struct {
	svc API
}

func NewHandler(svc API) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/payments", h.ListPayments)
	g.POST("/payments", h.CreatePayment)
	g.GET("/payments/:id", h.GetPayment)
	g.GET("/patients/:id/payments", h.ListPatientPayments)
}

func parseID(c echo.Context, what string) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+what+" id")
	}
	return id, nil
}

func (h *Handler) ListPayments(c echo.Context) error {
	params := pagination.FromContext(c)
	out, total, err := h.svc.List(c.Request().Context(), params.Limit, params.Offset)
	if err != nil {
		return apperror.HTTP(err)
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(out, total, params.Limit, params.Offset))
}

func (h *Handler) ListPatientPayments(c echo.Context) error {
	patientID, err := parseID(c, "patient")
	if err != nil {
		return err
	}
	params := pagination.FromContext(c)
	out, total, err := h.svc.ListByPatient(c.Request().Context(), patientID, params.Limit, params.Offset)
	if err != nil {
		return apperror.HTTP(err)
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(out, total, params.Limit, params.Offset))
}

func (h *Handler) GetPayment(c echo.Context) error {
	id, err := parseID(c, "payment")
	if err != nil {
		return err
	}
	out, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return apperror.HTTP(err)
	}
	if out == nil {
		return echo.NewHTTPError(http.StatusNotFound, apperror.NotFound("payment", id).Error())
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Handler) CreatePayment(c echo.Context) error {
	var in Input
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	out, err := h.svc.Create(c.Request().Context(), in)
	if err != nil {
		return apperror.HTTP(err)
	}
	return c.JSON(http.StatusCreated, out)
}

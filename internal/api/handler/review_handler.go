package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/devcamper/bootcamp-directory/internal/api/middleware"
	"github.com/devcamper/bootcamp-directory/internal/core/ports"
)

// ReviewHandler handles HTTP requests for reviews, both the flat /reviews
// collection and the nested /bootcamps/:bootcampId/reviews routes.
type ReviewHandler struct {
	service ports.ReviewService
}

func NewReviewHandler(service ports.ReviewService) *ReviewHandler {
	return &ReviewHandler{service: service}
}

type createReviewRequest struct {
	Title  string `json:"title" validate:"required"`
	Text   string `json:"text" validate:"required"`
	Rating int    `json:"rating" validate:"required,min=1,max=10"`
}

type updateReviewRequest struct {
	Title  string `json:"title"`
	Text   string `json:"text"`
	Rating *int   `json:"rating" validate:"omitempty,min=1,max=10"`
}

// List handles GET /api/v1/reviews and GET /api/v1/bootcamps/:bootcampId/reviews.
//
// @Summary      List reviews
// @Tags         reviews
// @Produce      json
// @Success      200  {object}  listResponse
// @Router       /api/v1/reviews [get]
func (h *ReviewHandler) List(c echo.Context) error {
	q := listQuery(c)
	reviews, total, err := h.service.List(c.Request().Context(), c.Param("bootcampId"), q)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listResponse{
		Success:    true,
		Count:      len(reviews),
		Pagination: paginate(q, total),
		Data:       reviews,
	})
}

// Get handles GET /api/v1/reviews/:id.
//
// @Summary      Get a review by ID
// @Tags         reviews
// @Produce      json
// @Param        id   path      string  true  "Review ID"
// @Success      200  {object}  dataResponse
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/reviews/{id} [get]
func (h *ReviewHandler) Get(c echo.Context) error {
	review, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataResponse{Success: true, Data: review})
}

// Add handles POST /api/v1/bootcamps/:bootcampId/reviews.
//
// @Summary      Submit a review for a bootcamp
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        bootcampId  path      string               true  "Bootcamp ID"
// @Param        body        body      createReviewRequest  true  "Review details"
// @Success      201         {object}  dataResponse
// @Failure      400         {object}  map[string]string
// @Failure      404         {object}  map[string]string
// @Router       /api/v1/bootcamps/{bootcampId}/reviews [post]
func (h *ReviewHandler) Add(c echo.Context) error {
	var req createReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	review, err := h.service.Add(c.Request().Context(), middleware.CurrentUser(c), c.Param("bootcampId"), ports.ReviewInput{
		Title:  req.Title,
		Text:   req.Text,
		Rating: req.Rating,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, dataResponse{Success: true, Data: review})
}

// Update handles PUT /api/v1/reviews/:id.
//
// @Summary      Update a review
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Review ID"
// @Param        body  body      updateReviewRequest  true  "Fields to update"
// @Success      200   {object}  dataResponse
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/v1/reviews/{id} [put]
func (h *ReviewHandler) Update(c echo.Context) error {
	var req updateReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	review, err := h.service.Update(c.Request().Context(), middleware.CurrentUser(c), c.Param("id"), ports.ReviewUpdate{
		Title:  req.Title,
		Text:   req.Text,
		Rating: req.Rating,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dataResponse{Success: true, Data: review})
}

// Delete handles DELETE /api/v1/reviews/:id.
//
// @Summary      Delete a review
// @Tags         reviews
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Review ID"
// @Success      200  {object}  dataResponse
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/reviews/{id} [delete]
func (h *ReviewHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), middleware.CurrentUser(c), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataResponse{Success: true, Data: emptyData})
}

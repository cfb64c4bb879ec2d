package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/devcamper/bootcamp-directory/internal/api/middleware"
	"github.com/devcamper/bootcamp-directory/internal/core/ports"
)

// CourseHandler handles HTTP requests for courses, both the flat /courses
// collection and the nested /bootcamps/:bootcampId/courses routes.
type CourseHandler struct {
	service ports.CourseService
}

func NewCourseHandler(service ports.CourseService) *CourseHandler {
	return &CourseHandler{service: service}
}

type createCourseRequest struct {
	Title                string  `json:"title" validate:"required"`
	Description          string  `json:"description" validate:"required"`
	Weeks                int     `json:"weeks" validate:"required,gt=0"`
	Tuition              float64 `json:"tuition" validate:"required,gt=0"`
	MinimumSkill         string  `json:"minimum_skill" validate:"required,oneof=beginner intermediate advanced"`
	ScholarshipAvailable bool    `json:"scholarship_available"`
}

type updateCourseRequest struct {
	Title                string   `json:"title"`
	Description          string   `json:"description"`
	Weeks                *int     `json:"weeks" validate:"omitempty,gt=0"`
	Tuition              *float64 `json:"tuition" validate:"omitempty,gt=0"`
	MinimumSkill         string   `json:"minimum_skill" validate:"omitempty,oneof=beginner intermediate advanced"`
	ScholarshipAvailable *bool    `json:"scholarship_available"`
}

// List handles GET /api/v1/courses and GET /api/v1/bootcamps/:bootcampId/courses.
//
// @Summary      List courses
// @Tags         courses
// @Produce      json
// @Success      200  {object}  listResponse
// @Router       /api/v1/courses [get]
func (h *CourseHandler) List(c echo.Context) error {
	q := listQuery(c)
	courses, total, err := h.service.List(c.Request().Context(), c.Param("bootcampId"), q)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listResponse{
		Success:    true,
		Count:      len(courses),
		Pagination: paginate(q, total),
		Data:       courses,
	})
}

// Get handles GET /api/v1/courses/:id.
//
// @Summary      Get a course by ID
// @Tags         courses
// @Produce      json
// @Param        id   path      string  true  "Course ID"
// @Success      200  {object}  dataResponse
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/courses/{id} [get]
func (h *CourseHandler) Get(c echo.Context) error {
	course, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataResponse{Success: true, Data: course})
}

// Add handles POST /api/v1/bootcamps/:bootcampId/courses.
//
// @Summary      Add a course to a bootcamp
// @Tags         courses
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        bootcampId  path      string               true  "Bootcamp ID"
// @Param        body        body      createCourseRequest  true  "Course details"
// @Success      201         {object}  dataResponse
// @Failure      403         {object}  map[string]string
// @Failure      404         {object}  map[string]string
// @Router       /api/v1/bootcamps/{bootcampId}/courses [post]
func (h *CourseHandler) Add(c echo.Context) error {
	var req createCourseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	course, err := h.service.Add(c.Request().Context(), middleware.CurrentUser(c), c.Param("bootcampId"), ports.CourseInput{
		Title:                req.Title,
		Description:          req.Description,
		Weeks:                req.Weeks,
		Tuition:              req.Tuition,
		MinimumSkill:         req.MinimumSkill,
		ScholarshipAvailable: req.ScholarshipAvailable,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, dataResponse{Success: true, Data: course})
}

// Update handles PUT /api/v1/courses/:id.
//
// @Summary      Update a course
// @Tags         courses
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Course ID"
// @Param        body  body      updateCourseRequest  true  "Fields to update"
// @Success      200   {object}  dataResponse
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/v1/courses/{id} [put]
func (h *CourseHandler) Update(c echo.Context) error {
	var req updateCourseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	course, err := h.service.Update(c.Request().Context(), middleware.CurrentUser(c), c.Param("id"), ports.CourseUpdate{
		Title:                req.Title,
		Description:          req.Description,
		Weeks:                req.Weeks,
		Tuition:              req.Tuition,
		MinimumSkill:         req.MinimumSkill,
		ScholarshipAvailable: req.ScholarshipAvailable,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dataResponse{Success: true, Data: course})
}

// Delete handles DELETE /api/v1/courses/:id.
//
// @Summary      Delete a course
// @Tags         courses
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Course ID"
// @Success      200  {object}  dataResponse
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/courses/{id} [delete]
func (h *CourseHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), middleware.CurrentUser(c), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataResponse{Success: true, Data: emptyData})
}

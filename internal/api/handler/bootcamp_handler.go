package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/devcamper/bootcamp-directory/internal/api/middleware"
	"github.com/devcamper/bootcamp-directory/internal/core/ports"
)

// BootcampHandler handles HTTP requests for bootcamp listings.
type BootcampHandler struct {
	service ports.BootcampService
}

func NewBootcampHandler(service ports.BootcampService) *BootcampHandler {
	return &BootcampHandler{service: service}
}

type createBootcampRequest struct {
	Name          string   `json:"name" validate:"required"`
	Description   string   `json:"description" validate:"required"`
	Website       string   `json:"website" validate:"omitempty,url"`
	Phone         string   `json:"phone"`
	Email         string   `json:"email" validate:"omitempty,email"`
	Address       string   `json:"address"`
	Careers       []string `json:"careers"`
	Housing       bool     `json:"housing"`
	JobAssistance bool     `json:"job_assistance"`
	JobGuarantee  bool     `json:"job_guarantee"`
	AcceptGi      bool     `json:"accept_gi"`
}

type updateBootcampRequest struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Website       string   `json:"website" validate:"omitempty,url"`
	Phone         string   `json:"phone"`
	Email         string   `json:"email" validate:"omitempty,email"`
	Address       string   `json:"address"`
	Careers       []string `json:"careers"`
	Housing       *bool    `json:"housing"`
	JobAssistance *bool    `json:"job_assistance"`
	JobGuarantee  *bool    `json:"job_guarantee"`
	AcceptGi      *bool    `json:"accept_gi"`
}

// List handles GET /api/v1/bootcamps.
//
// @Summary      List bootcamps
// @Tags         bootcamps
// @Produce      json
// @Param        select  query     string  false  "Comma-separated fields to return"
// @Param        sort    query     string  false  "Comma-separated sort keys, '-' prefix for descending"
// @Param        page    query     int     false  "Page number"
// @Param        limit   query     int     false  "Items per page"
// @Success      200     {object}  listResponse
// @Router       /api/v1/bootcamps [get]
func (h *BootcampHandler) List(c echo.Context) error {
	q := listQuery(c)
	bootcamps, total, err := h.service.List(c.Request().Context(), q)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listResponse{
		Success:    true,
		Count:      len(bootcamps),
		Pagination: paginate(q, total),
		Data:       bootcamps,
	})
}

// Get handles GET /api/v1/bootcamps/:id.
//
// @Summary      Get a bootcamp by ID
// @Tags         bootcamps
// @Produce      json
// @Param        id   path      string  true  "Bootcamp ID"
// @Success      200  {object}  dataResponse
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/bootcamps/{id} [get]
func (h *BootcampHandler) Get(c echo.Context) error {
	bootcamp, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataResponse{Success: true, Data: bootcamp})
}

// InRadius handles GET /api/v1/bootcamps/radius/:zipcode/:distance.
//
// @Summary      List bootcamps within a radius of a zipcode
// @Tags         bootcamps
// @Produce      json
// @Param        zipcode   path      string  true  "Zipcode to center on"
// @Param        distance  path      number  true  "Radius in miles"
// @Success      200       {object}  listResponse
// @Failure      502       {object}  map[string]string
// @Router       /api/v1/bootcamps/radius/{zipcode}/{distance} [get]
func (h *BootcampHandler) InRadius(c echo.Context) error {
	distance, err := strconv.ParseFloat(c.Param("distance"), 64)
	if err != nil || distance <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "distance must be a positive number of miles")
	}

	bootcamps, err := h.service.InRadius(c.Request().Context(), c.Param("zipcode"), distance)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listResponse{Success: true, Count: len(bootcamps), Data: bootcamps})
}

// Create handles POST /api/v1/bootcamps.
//
// @Summary      Create a bootcamp
// @Tags         bootcamps
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createBootcampRequest  true  "Bootcamp details"
// @Success      201   {object}  dataResponse
// @Failure      403   {object}  map[string]string
// @Router       /api/v1/bootcamps [post]
func (h *BootcampHandler) Create(c echo.Context) error {
	var req createBootcampRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	bootcamp, err := h.service.Create(c.Request().Context(), middleware.CurrentUser(c), ports.BootcampInput{
		Name:          req.Name,
		Description:   req.Description,
		Website:       req.Website,
		Phone:         req.Phone,
		Email:         req.Email,
		Address:       req.Address,
		Careers:       req.Careers,
		Housing:       req.Housing,
		JobAssistance: req.JobAssistance,
		JobGuarantee:  req.JobGuarantee,
		AcceptGi:      req.AcceptGi,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, dataResponse{Success: true, Data: bootcamp})
}

// Update handles PUT /api/v1/bootcamps/:id.
//
// @Summary      Update a bootcamp
// @Tags         bootcamps
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                 true  "Bootcamp ID"
// @Param        body  body      updateBootcampRequest  true  "Fields to update"
// @Success      200   {object}  dataResponse
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/v1/bootcamps/{id} [put]
func (h *BootcampHandler) Update(c echo.Context) error {
	var req updateBootcampRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	bootcamp, err := h.service.Update(c.Request().Context(), middleware.CurrentUser(c), c.Param("id"), ports.BootcampUpdate{
		Name:          req.Name,
		Description:   req.Description,
		Website:       req.Website,
		Phone:         req.Phone,
		Email:         req.Email,
		Address:       req.Address,
		Careers:       req.Careers,
		Housing:       req.Housing,
		JobAssistance: req.JobAssistance,
		JobGuarantee:  req.JobGuarantee,
		AcceptGi:      req.AcceptGi,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dataResponse{Success: true, Data: bootcamp})
}

// Delete handles DELETE /api/v1/bootcamps/:id.
//
// @Summary      Delete a bootcamp
// @Tags         bootcamps
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Bootcamp ID"
// @Success      200  {object}  dataResponse
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/bootcamps/{id} [delete]
func (h *BootcampHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), middleware.CurrentUser(c), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataResponse{Success: true, Data: emptyData})
}

// UploadPhoto handles PUT /api/v1/bootcamps/:id/photo.
//
// @Summary      Upload a bootcamp photo
// @Tags         bootcamps
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string  true  "Bootcamp ID"
// @Param        file  formData  file    true  "Image file"
// @Success      200   {object}  dataResponse
// @Failure      400   {object}  map[string]string
// @Router       /api/v1/bootcamps/{id}/photo [put]
func (h *BootcampHandler) UploadPhoto(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "please upload a file")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "please upload a file")
	}
	defer file.Close()

	name, err := h.service.UploadPhoto(c.Request().Context(), middleware.CurrentUser(c), c.Param("id"), ports.PhotoUpload{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
		Content:     file,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dataResponse{Success: true, Data: name})
}

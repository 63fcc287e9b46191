package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/realtorhub/homes-api/internal/core/domain"
	"github.com/realtorhub/homes-api/internal/core/ports"
)

// maxImageBytes caps a single uploaded image.
const maxImageBytes = 10 << 20

// HomeHandler handles HTTP requests for home listings.
type HomeHandler struct {
	service ports.HomeService
}

func NewHomeHandler(service ports.HomeService) *HomeHandler {
	return &HomeHandler{service: service}
}

// List handles GET /home.
//
// @Summary      List homes
// @Tags         homes
// @Produce      json
// @Param        city          query     string  false  "City (exact match)"
// @Param        minPrice      query     number  false  "Minimum price, inclusive"
// @Param        maxPrice      query     number  false  "Maximum price, inclusive"
// @Param        propertyType  query     string  false  "RESIDENTIAL or CONDO"
// @Success      200           {array}   homeResponse
// @Failure      400           {object}  errorResponse
// @Router       /home [get]
func (h *HomeHandler) List(c echo.Context) error {
	filter, err := buildHomeFilter(
		c.QueryParam("city"),
		c.QueryParam("minPrice"),
		c.QueryParam("maxPrice"),
		c.QueryParam("propertyType"),
	)
	if err != nil {
		return err
	}

	homes, err := h.service.ListHomes(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toHomeResponses(homes))
}

// Get handles GET /home/:id.
//
// @Summary      Get a home
// @Tags         homes
// @Produce      json
// @Param        id   path      int  true  "Home ID"
// @Success      200  {object}  homeResponse
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /home/{id} [get]
func (h *HomeHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	home, err := h.service.GetHome(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toHomeResponse(home))
}

// Create handles POST /home. The owner is always the authenticated realtor.
//
// @Summary      List a new home
// @Tags         homes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string             false  "Idempotency key to prevent duplicate listings"
// @Param        body             body      createHomeRequest  true   "Home details"
// @Success      201              {object}  homeResponse
// @Failure      400              {object}  errorResponse
// @Failure      401              {object}  errorResponse
// @Failure      403              {object}  errorResponse
// @Router       /home [post]
func (h *HomeHandler) Create(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req createHomeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	idempotencyKey := strings.TrimSpace(c.Request().Header.Get("Idempotency-Key"))
	home, err := h.service.CreateHome(c.Request().Context(), toCreateInput(req, user.ID, idempotencyKey))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toHomeResponse(home))
}

// Update handles PUT /home/:id.
//
// @Summary      Update a home
// @Tags         homes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                true  "Home ID"
// @Param        body  body      updateHomeRequest  true  "Fields to change"
// @Success      200   {object}  homeResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /home/{id} [put]
func (h *HomeHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req updateHomeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.ensureOwner(c, id); err != nil {
		return err
	}

	home, err := h.service.UpdateHome(c.Request().Context(), id, toHomeUpdate(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toHomeResponse(home))
}

// Delete handles DELETE /home/:id.
//
// @Summary      Delete a home
// @Tags         homes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Home ID"
// @Success      200  {object}  deleteHomeResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /home/{id} [delete]
func (h *HomeHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.ensureOwner(c, id); err != nil {
		return err
	}

	if err := h.service.DeleteHome(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, deleteHomeResponse{Message: "home deleted", ID: id})
}

// AddImage handles POST /home/:id/images.
//
// @Summary      Upload a home image
// @Tags         homes
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int   true  "Home ID"
// @Param        file  formData  file  true  "Image file"
// @Success      201   {object}  homeResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      503   {object}  errorResponse
// @Router       /home/{id}/images [post]
func (h *HomeHandler) AddImage(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.ensureOwner(c, id); err != nil {
		return err
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "file is required")
	}
	if fh.Size > maxImageBytes {
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "image too large")
	}
	contentType := fh.Header.Get(echo.HeaderContentType)
	if !strings.HasPrefix(contentType, "image/") {
		return echo.NewHTTPError(http.StatusBadRequest, "file must be an image")
	}

	f, err := fh.Open()
	if err != nil {
		return err
	}
	defer f.Close()

	home, err := h.service.AddImage(c.Request().Context(), id, ports.ImageUpload{
		Filename:    fh.Filename,
		ContentType: contentType,
		Size:        fh.Size,
		Body:        f,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toHomeResponse(home))
}

// ensureOwner resolves the realtor owning the home and denies the request
// unless it is the caller. It runs before any mutation.
func (h *HomeHandler) ensureOwner(c echo.Context, homeID int64) error {
	realtor, err := h.service.GetRealtorByHomeID(c.Request().Context(), homeID)
	if err != nil {
		return err
	}
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	if realtor == nil || realtor.ID != user.ID {
		return domain.ErrUnauthorized
	}
	return nil
}

package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/pawprint/adoption-site/internal/api/metrics"
	"github.com/pawprint/adoption-site/internal/core/domain"
	"github.com/pawprint/adoption-site/internal/core/ports"
)

type ListingHandler struct {
	listings ports.ListingService
	maxImage int64
	log      zerolog.Logger
}

func NewListingHandler(listings ports.ListingService, maxImageBytes int64, log zerolog.Logger) *ListingHandler {
	return &ListingHandler{listings: listings, maxImage: maxImageBytes, log: log}
}

// List renders every listing. Staff see removal buttons instead of adopt ones.
//
// @Summary      Browse listings
// @Tags         listings
// @Produce      html
// @Success      200
// @Router       /listings [get]
func (h *ListingHandler) List(c echo.Context) error {
	who := ctxIdentity(c)
	listings, err := h.listings.List(c.Request().Context(), who)
	if err != nil {
		return err
	}
	return render(c, http.StatusOK, "listings", echo.Map{"Listings": listings, "Staff": who.IsStaff()})
}

// NewForm renders the add-listing form.
//
// @Summary      Add-listing form
// @Tags         listings
// @Produce      html
// @Success      200
// @Router       /addlisting [get]
func (h *ListingHandler) NewForm(c echo.Context) error {
	return render(c, http.StatusOK, "addlisting", nil)
}

// Create stores a new listing with an optional image.
//
// @Summary      Create a listing
// @Tags         listings
// @Accept       multipart/form-data
// @Produce      html
// @Param        name         formData  string  true   "Animal name"
// @Param        description  formData  string  true   "Description"
// @Param        birth_date   formData  string  false  "Birth date (YYYY-MM-DD)"
// @Param        image        formData  file    false  "Photo"
// @Success      303
// @Failure      400
// @Router       /addlisting [post]
func (h *ListingHandler) Create(c echo.Context) error {
	var f listingForm
	if err := c.Bind(&f); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	form := echo.Map{"Name": f.Name, "Description": f.Description, "BirthDate": f.BirthDate}
	if err := c.Validate(&f); err != nil {
		form["Error"] = inlineError(err)
		return render(c, http.StatusBadRequest, "addlisting", form)
	}

	in := ports.CreateListingInput{Name: f.Name, Description: f.Description}
	if f.BirthDate != "" {
		// Already validated against the same layout.
		born, _ := time.Parse("2006-01-02", f.BirthDate)
		in.BirthDate = &born
	}

	image, err := h.readImage(c)
	if err != nil {
		return err
	}
	in.Image = image

	_, err = h.listings.Create(c.Request().Context(), ctxIdentity(c), in)
	switch {
	case errors.Is(err, domain.ErrMissingFields):
		form["Error"] = msgMissingFields
		return render(c, http.StatusBadRequest, "addlisting", form)
	case errors.Is(err, domain.ErrUnsupportedImage):
		form["Error"] = fmt.Sprintf("The photo must be an image of at most %d bytes.", h.maxImage)
		return render(c, http.StatusBadRequest, "addlisting", form)
	case err != nil:
		return err
	}

	metrics.ListingsCreatedTotal.Inc()
	return seeOther(c, "/listings")
}

// readImage returns the uploaded photo, or nil when none was attached.
// At most maxImage+1 bytes are read so oversize uploads still fail validation.
func (h *ListingHandler) readImage(c echo.Context) ([]byte, error) {
	fh, err := c.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid upload")
	}
	if fh.Size == 0 {
		return nil, nil
	}

	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, h.maxImage+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	return data, nil
}

// Remove deletes a listing and closes its pending requests.
//
// @Summary      Remove a listing
// @Tags         listings
// @Accept       x-www-form-urlencoded
// @Param        id  formData  string  true  "Listing ID"
// @Success      303
// @Failure      404
// @Failure      409
// @Router       /remove [post]
func (h *ListingHandler) Remove(c echo.Context) error {
	id, err := bindID(c)
	if err != nil {
		return err
	}
	if err := h.listings.Remove(c.Request().Context(), ctxIdentity(c), id); err != nil {
		return err
	}

	metrics.ListingsRemovedTotal.Inc()
	return seeOther(c, "/listings")
}

// Image streams a listing's photo.
//
// @Summary      Listing photo
// @Tags         listings
// @Produce      image/png
// @Produce      image/jpeg
// @Param        id  path  string  true  "Listing ID"
// @Success      200
// @Failure      404
// @Router       /listings/{id}/image [get]
func (h *ListingHandler) Image(c echo.Context) error {
	img, err := h.listings.Image(c.Request().Context(), ctxIdentity(c), c.Param("id"))
	if err != nil {
		return err
	}
	c.Response().Header().Set("Cache-Control", "private, max-age=3600")
	return c.Blob(http.StatusOK, img.ContentType, img.Data)
}

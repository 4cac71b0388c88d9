package handler

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"gorm.io/gorm"

	"campusnest/model"
)

// FetchProperties returns every public listing, then filters and sorts in
// memory. There is no pagination.
func (h *Handler) FetchProperties(c echo.Context) error {
	params := model.PropertyQueryParams{}
	if err := c.Bind(&params); err != nil {
		return err
	}

	kind := model.Kind(params.Kind)
	if kind != "" && !kind.IsValid() {
		return &echo.HTTPError{Code: http.StatusBadRequest, Message: "Unknown property kind."}
	}
	if !model.IsValidSort(params.Sort) {
		return &echo.HTTPError{Code: http.StatusBadRequest, Message: "Unknown sort order."}
	}

	properties := []model.Property{}
	err := h.DB.Where("status IN ?", model.PublicPropertyStatuses).
		Order("created_at desc").
		Find(&properties).Error
	if err != nil {
		log.Errorf("Failed to fetch properties: %v", err)
		return &echo.HTTPError{Code: http.StatusInternalServerError, Message: "Failed to fetch properties."}
	}

	properties = model.FilterProperties(properties, kind, params.Q)
	model.SortProperties(properties, params.Sort)

	return c.JSON(http.StatusOK, ListResponse{
		Total: int64(len(properties)),
		Items: responseArrFormatter(properties, currentUser(c).Roles),
	})
}

// FetchAdminProperties lists every listing including drafts.
func (h *Handler) FetchAdminProperties(c echo.Context) error {
	query := h.DB.Order("created_at desc")
	if status := c.QueryParam("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	properties := []model.Property{}
	if err := query.Find(&properties).Error; err != nil {
		log.Errorf("Failed to fetch properties: %v", err)
		return &echo.HTTPError{Code: http.StatusInternalServerError, Message: "Failed to fetch properties."}
	}

	return c.JSON(http.StatusOK, ListResponse{Total: int64(len(properties)), Items: properties})
}

func (h *Handler) FetchProperty(c echo.Context) error {
	reqUser := currentUser(c)

	p, err := h.findProperty(c.Param("id"))
	if err != nil {
		return err
	}

	// Drafts are only visible on the dashboard.
	if !p.Status.IsPublic() && !reqUser.IsAdmin {
		return &echo.HTTPError{Code: http.StatusNotFound, Message: "Property not found."}
	}

	return c.JSON(http.StatusOK, responseFormatter(*p, reqUser.Roles))
}

// FetchPropertyContactLink builds the WhatsApp link the enquiry button opens.
func (h *Handler) FetchPropertyContactLink(c echo.Context) error {
	p, err := h.findProperty(c.Param("id"))
	if err != nil {
		return err
	}

	if !p.Status.IsPublic() {
		return &echo.HTTPError{Code: http.StatusNotFound, Message: "Property not found."}
	}

	return c.JSON(http.StatusOK, LinkResponse{URL: p.ContactLink()})
}

func (h *Handler) findProperty(id string) (*model.Property, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, &echo.HTTPError{Code: http.StatusNotFound, Message: "Property not found."}
	}

	p := &model.Property{}
	err := h.DB.First(p, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &echo.HTTPError{Code: http.StatusNotFound, Message: "Property not found."}
		}
		log.Errorf("Failed to fetch property %s: %v", id, err)
		he := &echo.HTTPError{Code: http.StatusInternalServerError, Message: "Failed to fetch property."}
		return nil, he.SetInternal(err)
	}

	return p, nil
}

package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"gorm.io/gorm"

	"campusnest/model"
)

// GetAndCreateIfNotFoundCity returns the city row for name, creating it on
// first use. The state comes from the fixed lookup table.
func GetAndCreateIfNotFoundCity(tx *gorm.DB, name string) (*model.City, error) {
	state, ok := model.StateForCity(name)
	if !ok {
		return nil, errors.New("unknown city " + name)
	}

	city := model.City{Name: name, Country: model.Country, State: state}
	slug := model.CitySlug(city.Country, city.State, city.Name)

	err := tx.Where("slug = ?", slug).First(&city).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Infof("Creating city %s", slug)
			if err = tx.Create(&city).Error; err != nil {
				return nil, err
			}
		} else {
			return nil, err
		}
	}

	return &city, nil
}

func (h *Handler) FetchCities(c echo.Context) error {
	return c.JSON(http.StatusOK, model.CityOptions())
}

func (h *Handler) FetchVocabulary(c echo.Context) error {
	vocab, ok := model.VocabularyFor(model.Kind(c.Param("kind")))
	if !ok {
		return &echo.HTTPError{Code: http.StatusNotFound, Message: "Unknown property kind."}
	}

	return c.JSON(http.StatusOK, vocab)
}

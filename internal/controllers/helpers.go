package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/poofware/vacancy-watch/internal/models"
	"github.com/poofware/vacancy-watch/internal/repositories"
	"github.com/poofware/vacancy-watch/internal/utils"
)

var validate = validator.New()

// propertyBySlug resolves the {slug} path var to a property. Callers
// hand the returned error straight to utils.HandleAppError.
func propertyBySlug(
	ctx context.Context,
	r *http.Request,
	propRepo repositories.PropertyRepository,
) (*models.Property, error) {
	slug := mux.Vars(r)["slug"]
	prop, err := propRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, &utils.AppError{
			StatusCode: http.StatusInternalServerError,
			Code:       utils.ErrCodeInternal,
			Message:    "Failed to load property",
			Err:        err,
		}
	}
	if prop == nil {
		return nil, &utils.AppError{
			StatusCode: http.StatusNotFound,
			Code:       utils.ErrCodeNotFound,
			Message:    "Unknown property: " + slug,
			Err:        utils.ErrPropertyNotFound,
		}
	}
	return prop, nil
}

// parseDate parses a YYYY-MM-DD string into a UTC midnight time.
func parseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

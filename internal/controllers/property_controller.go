package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"

	"github.com/poofware/vacancy-watch/internal/dtos"
	"github.com/poofware/vacancy-watch/internal/models"
	"github.com/poofware/vacancy-watch/internal/repositories"
	"github.com/poofware/vacancy-watch/internal/utils"
)

type PropertyController struct {
	propRepo repositories.PropertyRepository
}

func NewPropertyController(propRepo repositories.PropertyRepository) *PropertyController {
	return &PropertyController{propRepo: propRepo}
}

// ----------------------------------------------------------------
// POST /api/v1/properties
// ----------------------------------------------------------------
func (c *PropertyController) CreatePropertyHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req dtos.CreatePropertyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON body", nil, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, err.Error(), nil, nil)
		return
	}

	existing, err := c.propRepo.GetBySlug(ctx, req.Slug)
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Failed to check slug", nil, err)
		return
	}
	if existing != nil {
		utils.RespondErrorWithCode(w, http.StatusConflict, utils.ErrCodeConflict, "Slug already in use", nil, utils.ErrPropertySlugExists)
		return
	}

	tz := req.TimeZone
	if tz == "" {
		tz = "UTC"
	} else if _, tzErr := time.LoadLocation(tz); tzErr != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Unknown timezone: "+tz, nil, nil)
		return
	}

	prop := &models.Property{
		ID:             uuid.New(),
		PropertyName:   req.PropertyName,
		Slug:           req.Slug,
		ListingURL:     req.ListingURL,
		SourcePlatform: req.SourcePlatform,
		TimeZone:       tz,
	}
	if err := c.propRepo.Create(ctx, prop); err != nil {
		// A concurrent create can slip past the slug pre-check and hit
		// the UNIQUE constraint instead.
		if isUniqueViolation(err) {
			utils.RespondErrorWithCode(w, http.StatusConflict, utils.ErrCodeConflict, "Slug already in use", nil, utils.ErrPropertySlugExists)
			return
		}
		utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Failed to create property", nil, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, toPropertyDTO(prop))
}

// ----------------------------------------------------------------
// GET /api/v1/properties
// ----------------------------------------------------------------
func (c *PropertyController) ListPropertiesHandler(w http.ResponseWriter, r *http.Request) {
	props, err := c.propRepo.ListAllProperties(r.Context())
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Failed to list properties", nil, err)
		return
	}
	out := make([]dtos.PropertyDTO, 0, len(props))
	for _, p := range props {
		out = append(out, toPropertyDTO(p))
	}
	utils.RespondWithJSON(w, http.StatusOK, out)
}

// ----------------------------------------------------------------
// GET /api/v1/properties/{slug}
// ----------------------------------------------------------------
func (c *PropertyController) GetPropertyHandler(w http.ResponseWriter, r *http.Request) {
	prop, err := propertyBySlug(r.Context(), r, c.propRepo)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toPropertyDTO(prop))
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func toPropertyDTO(p *models.Property) dtos.PropertyDTO {
	return dtos.PropertyDTO{
		ID:             p.ID,
		PropertyName:   p.PropertyName,
		Slug:           p.Slug,
		ListingURL:     p.ListingURL,
		SourcePlatform: p.SourcePlatform,
		TimeZone:       p.TimeZone,
		CreatedAt:      p.CreatedAt,
	}
}

package controllers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/poofware/vacancy-watch/internal/models"
	"github.com/poofware/vacancy-watch/internal/repositories"
	"github.com/poofware/vacancy-watch/internal/utils"
)

// InventoryController serves the downstream read surface: daily
// snapshots and appeared/disappeared events, keyed by property slug.
type InventoryController struct {
	propRepo  repositories.PropertyRepository
	snapRepo  repositories.SnapshotRepository
	eventRepo repositories.UnitEventRepository
}

func NewInventoryController(
	propRepo repositories.PropertyRepository,
	snapRepo repositories.SnapshotRepository,
	eventRepo repositories.UnitEventRepository,
) *InventoryController {
	return &InventoryController{
		propRepo:  propRepo,
		snapRepo:  snapRepo,
		eventRepo: eventRepo,
	}
}

// ----------------------------------------------------------------
// GET /api/v1/properties/{slug}/snapshots?limit=
// ----------------------------------------------------------------
func (c *InventoryController) ListSnapshotsHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	prop, err := propertyBySlug(ctx, r, c.propRepo)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "limit must be a positive integer", nil, nil)
			return
		}
		limit = n
	}

	snaps, err := c.snapRepo.ListByProperty(ctx, prop.ID, limit)
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Failed to list snapshots", nil, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, snaps)
}

// ----------------------------------------------------------------
// GET /api/v1/properties/{slug}/snapshots/{date}
// ----------------------------------------------------------------
func (c *InventoryController) GetSnapshotHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	prop, err := propertyBySlug(ctx, r, c.propRepo)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	date, err := parseDate(mux.Vars(r)["date"])
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "date must be YYYY-MM-DD", nil, nil)
		return
	}

	snap, err := c.snapRepo.GetByDate(ctx, prop.ID, date)
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Failed to load snapshot", nil, err)
		return
	}
	if snap == nil {
		utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "No snapshot for that day", nil, utils.ErrSnapshotNotFound)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, snap)
}

// ----------------------------------------------------------------
// GET /api/v1/properties/{slug}/events?date=&source=
// ----------------------------------------------------------------
func (c *InventoryController) ListEventsHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	prop, err := propertyBySlug(ctx, r, c.propRepo)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	rawDate := r.URL.Query().Get("date")
	if rawDate == "" {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "date query param is required", nil, nil)
		return
	}
	date, err := parseDate(rawDate)
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "date must be YYYY-MM-DD", nil, nil)
		return
	}

	source := r.URL.Query().Get("source")
	var events []*models.UnitEvent
	if source != "" {
		events, err = c.eventRepo.ListForDateAndSource(ctx, prop.ID, date, source)
	} else {
		events, err = c.eventRepo.ListForDate(ctx, prop.ID, date)
	}
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Failed to list events", nil, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, events)
}

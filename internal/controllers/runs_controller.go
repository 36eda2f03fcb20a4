package controllers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/poofware/vacancy-watch/internal/adapters"
	"github.com/poofware/vacancy-watch/internal/dtos"
	"github.com/poofware/vacancy-watch/internal/repositories"
	"github.com/poofware/vacancy-watch/internal/services"
	"github.com/poofware/vacancy-watch/internal/utils"
)

type RunsController struct {
	propRepo      repositories.PropertyRepository
	runService    *services.RunService
	batchService  *services.BatchService
	adapter       adapters.Adapter
	defaultSource string
}

func NewRunsController(
	propRepo repositories.PropertyRepository,
	runService *services.RunService,
	batchService *services.BatchService,
	adapter adapters.Adapter,
	defaultSource string,
) *RunsController {
	return &RunsController{
		propRepo:      propRepo,
		runService:    runService,
		batchService:  batchService,
		adapter:       adapter,
		defaultSource: defaultSource,
	}
}

// ----------------------------------------------------------------
// POST /api/v1/runs/property/{slug}
// ----------------------------------------------------------------
func (c *RunsController) RunPropertyHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	prop, err := propertyBySlug(ctx, r, c.propRepo)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	date, source, ok := c.parseRunRequest(w, r)
	if !ok {
		return
	}

	result := c.runService.RunProperty(ctx, prop, c.adapter, date, source)
	if result.State == services.RunFailed {
		utils.RespondErrorWithCode(
			w,
			http.StatusBadGateway,
			utils.ErrCodeRunFailed,
			"Pipeline run failed for property "+prop.Slug,
			result,
			result.Err(),
		)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, result)
}

// ----------------------------------------------------------------
// POST /api/v1/runs/batch
// ----------------------------------------------------------------
func (c *RunsController) RunBatchHandler(w http.ResponseWriter, r *http.Request) {
	date, source, ok := c.parseRunRequest(w, r)
	if !ok {
		return
	}

	summary, err := c.batchService.RunAll(r.Context(), date, source)
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Batch sweep failed to start", nil, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, summary)
}

// parseRunRequest reads the optional RunRequest body. An empty body is
// fine; it means "property-local today, default source label".
func (c *RunsController) parseRunRequest(w http.ResponseWriter, r *http.Request) (time.Time, string, bool) {
	var req dtos.RunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON body", nil, err)
		return time.Time{}, "", false
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, err.Error(), nil, nil)
		return time.Time{}, "", false
	}

	var date time.Time
	if req.Date != "" {
		var err error
		date, err = parseDate(req.Date)
		if err != nil {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "date must be YYYY-MM-DD", nil, nil)
			return time.Time{}, "", false
		}
	}
	source := req.Source
	if source == "" {
		source = c.defaultSource
	}
	return date, source, true
}

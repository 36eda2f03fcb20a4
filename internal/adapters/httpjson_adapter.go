package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/poofware/vacancy-watch/internal/models"
)

// HTTPJSONAdapter pulls availability from a JSON endpoint. Leasing
// platforms that expose a structured availability API (or for which an
// upstream extractor republishes one) are served by this single
// adapter; markup-scraping connectors live outside this repo and feed
// the same pipeline through the Adapter interface.
//
// Expected endpoint:
//
//	GET {base}/availability?property={slug}
//	  -> {"units":[...]} or a bare array [...]
type HTTPJSONAdapter struct {
	name      string
	baseURL   string
	client    *http.Client
	userAgent string
}

type HTTPJSONAdapterOptions struct {
	Name      string
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
}

func NewHTTPJSONAdapter(opts HTTPJSONAdapterOptions) (*HTTPJSONAdapter, error) {
	base := strings.TrimSpace(opts.BaseURL)
	if base == "" {
		return nil, errors.New("BaseURL is required")
	}
	if _, err := url.Parse(base); err != nil {
		return nil, fmt.Errorf("invalid BaseURL: %w", err)
	}
	to := opts.Timeout
	if to <= 0 {
		to = 20 * time.Second
	}
	name := strings.TrimSpace(opts.Name)
	if name == "" {
		name = "httpjson"
	}
	ua := strings.TrimSpace(opts.UserAgent)
	if ua == "" {
		ua = "vacancy-watch/1.0"
	}
	return &HTTPJSONAdapter{
		name:      name,
		baseURL:   strings.TrimRight(base, "/"),
		client:    &http.Client{Timeout: to},
		userAgent: ua,
	}, nil
}

func (a *HTTPJSONAdapter) Name() string { return a.name }

func (a *HTTPJSONAdapter) FetchUnits(ctx context.Context, prop *models.Property) ([]RawUnitRecord, error) {
	u, err := url.Parse(a.baseURL + "/availability")
	if err != nil {
		return nil, err
	}
	q := u.Query()
	q.Set("property", prop.Slug)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", a.userAgent)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("availability endpoint returned %d for property %s", resp.StatusCode, prop.Slug)
	}

	// Accept both object-wrapped and bare-array payloads.
	var wrapped struct {
		Units []RawUnitRecord `json:"units"`
	}
	if err := json.Unmarshal(body, &wrapped); err == nil && wrapped.Units != nil {
		return a.tagged(wrapped.Units, u.String()), nil
	}
	var bare []RawUnitRecord
	if err := json.Unmarshal(body, &bare); err == nil {
		return a.tagged(bare, u.String()), nil
	}
	return nil, fmt.Errorf("unrecognized availability payload for property %s", prop.Slug)
}

// tagged stamps fetch provenance into each record's diagnostic meta.
func (a *HTTPJSONAdapter) tagged(units []RawUnitRecord, pageURL string) []RawUnitRecord {
	for i := range units {
		if units[i].Meta == nil {
			units[i].Meta = map[string]string{}
		}
		units[i].Meta["adapter"] = a.name
		units[i].Meta["page_url"] = pageURL
	}
	return units
}

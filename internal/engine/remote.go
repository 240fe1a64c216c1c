package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/tartampluch/go-hijri/internal/config"
	"github.com/tartampluch/go-hijri/internal/hijri"
)

// gToHResponse is the subset of the Al Adhan "gToH" payload we read.
type gToHResponse struct {
	Code int `json:"code"`
	Data struct {
		Hijri struct {
			Day   string `json:"day"`
			Month struct {
				Number int `json:"number"`
			} `json:"month"`
			Year string `json:"year"`
		} `json:"hijri"`
	} `json:"data"`
}

// RemoteLookup asks the Al Adhan API for the Hijri date of a day.
// Answers are memoised per Gregorian day; failures are not cached.
type RemoteLookup struct {
	Client  *http.Client
	BaseURL string

	cache *lru.Cache[string, hijri.Date]
}

// NewRemoteLookup creates a RemoteLookup against baseURL with configured timeouts.
// An empty baseURL selects the public Al Adhan endpoint.
func NewRemoteLookup(baseURL string) (*RemoteLookup, error) {
	if baseURL == "" {
		baseURL = config.AlAdhanBaseURL
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrInvalidURL, err)
	}
	// Security check: ensure strictly HTTP or HTTPS.
	if u.Scheme != config.SchemeHTTP && u.Scheme != config.SchemeHTTPS {
		return nil, fmt.Errorf("%s: %s", config.ErrProtocol, u.Scheme)
	}

	cache, err := lru.New[string, hijri.Date](config.LookupCacheSize)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrLookupCache, err)
	}

	return &RemoteLookup{
		Client:  &http.Client{Timeout: config.HTTPTimeout},
		BaseURL: strings.TrimRight(baseURL, "/"),
		cache:   cache,
	}, nil
}

// Lookup implements HijriLookup. Any failure is logged and reported as ok == false.
func (r *RemoteLookup) Lookup(ctx context.Context, t time.Time) (hijri.Date, bool) {
	d, err := r.Fetch(ctx, t)
	if err != nil {
		slog.Warn(config.MsgLookupFailed,
			config.LogKeyComponent, config.CompLookup,
			config.LogKeyDate, t.Format(time.DateOnly),
			config.LogKeyError, err)
		return hijri.Date{}, false
	}
	return d, true
}

// Fetch retrieves the Hijri date of t's civil day, consulting the cache first.
func (r *RemoteLookup) Fetch(ctx context.Context, t time.Time) (hijri.Date, error) {
	key := t.Format(config.AlAdhanDateFormat)

	if d, ok := r.cache.Get(key); ok {
		slog.Debug(config.MsgLookupCacheHit,
			config.LogKeyComponent, config.CompLookup,
			config.LogKeyDate, key)
		return d, nil
	}

	target := r.BaseURL + config.AlAdhanGToHPath + key
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return hijri.Date{}, fmt.Errorf("%s: %w", config.ErrLookupRequest, err)
	}
	req.Header.Set(config.HeaderUserAgent, config.UserAgent)
	req.Header.Set(config.HeaderAccept, config.MimeJSON)

	resp, err := r.Client.Do(req)
	if err != nil {
		return hijri.Date{}, fmt.Errorf("%s: %w", config.ErrLookupNetwork, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return hijri.Date{}, fmt.Errorf("%s: %d %s", config.ErrLookupStatus, resp.StatusCode, resp.Status)
	}

	var payload gToHResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, config.MaxLookupBodyBytes)).Decode(&payload); err != nil {
		return hijri.Date{}, fmt.Errorf("%s: %w", config.ErrLookupDecode, err)
	}

	d, err := payload.date()
	if err != nil {
		return hijri.Date{}, err
	}

	r.cache.Add(key, d)
	return d, nil
}

// date validates the payload and converts it to a zero-based month Date.
func (p gToHResponse) date() (hijri.Date, error) {
	if p.Code != config.AlAdhanStatusOK {
		return hijri.Date{}, fmt.Errorf("%s: code %d", config.ErrLookupStatus, p.Code)
	}

	h := p.Data.Hijri
	day, errDay := strconv.Atoi(h.Day)
	year, errYear := strconv.Atoi(h.Year)
	if err := errors.Join(errDay, errYear); err != nil {
		return hijri.Date{}, fmt.Errorf("%s: %w", config.ErrLookupPayload, err)
	}
	if h.Month.Number < 1 || h.Month.Number > hijri.MonthsPerYear || day < 1 || day > 30 {
		return hijri.Date{}, errors.New(config.ErrLookupPayload)
	}

	return hijri.Date{Day: day, Month: h.Month.Number - 1, Year: year}, nil
}

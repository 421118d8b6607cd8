// Package registry fetches and caches per-entity ownership records from the
// Czech business registry (ARES) over HTTP, with request throttling,
// retry/backoff on transient failures, and definitive-absence caching for
// 400/404 responses.
package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"regexp"
	"strings"
	"sync"
	"time"
)

// Payload is the subset of the ARES "ekonomicke-subjekty-vr" response body
// this package consumes. Error and URL are set only for cached
// definitive-absence records (HTTP 400/404).
type Payload struct {
	IcoID   string   `json:"icoId,omitempty"`
	Ico     string   `json:"ico,omitempty"`
	Zaznamy []Record `json:"zaznamy,omitempty"`
	Error   string   `json:"_error,omitempty"`
	URL     string   `json:"_url,omitempty"`
}

// ID returns the registry ID carried by the payload, tolerating either the
// icoId (live API) or ico (bulk-dump) key.
func (p *Payload) ID() string {
	if p.IcoID != "" {
		return p.IcoID
	}
	return p.Ico
}

// ObchodniJmenoOf returns the primary record's current trade name, or "" if
// none can be resolved; a convenience for CLI/diagnostic output.
func (p *Payload) ObchodniJmenoOf() string {
	for _, rec := range p.Zaznamy {
		for _, n := range rec.ObchodniJmeno {
			if n.DatumVymazu == "" {
				return n.Hodnota
			}
		}
	}
	return ""
}

// Record is one entry in the payload's zaznamy list.
type Record struct {
	PrimarniZaznam bool          `json:"primarniZaznam"`
	ObchodniJmeno  []NameEntry   `json:"obchodniJmeno,omitempty"`
	Spolecnici     []MemberGroup `json:"spolecnici,omitempty"`
	Akcionari      []MemberGroup `json:"akcionari,omitempty"`
}

// NameEntry is one historical name entry; DatumVymazu absent means active.
type NameEntry struct {
	Hodnota     string `json:"hodnota"`
	DatumVymazu string `json:"datumVymazu,omitempty"`
}

// MemberGroup is one spolecnici/akcionari section (a governing-body group).
type MemberGroup struct {
	DatumVymazu   string   `json:"datumVymazu,omitempty"`
	NazevOrganu   string   `json:"nazevOrganu,omitempty"`
	Spolecnik     []Member `json:"spolecnik,omitempty"`
	ClenoveOrganu []Member `json:"clenoveOrganu,omitempty"`
}

// Member is one owner entry within a group.
type Member struct {
	DatumVymazu string    `json:"datumVymazu,omitempty"`
	DatumZapisu string    `json:"datumZapisu,omitempty"`
	Osoba       PersonRef `json:"osoba"`
	Podil       []Podil   `json:"podil,omitempty"`
}

// PersonRef holds exactly one of a natural or legal person.
type PersonRef struct {
	FyzickaOsoba   *FyzickaOsoba   `json:"fyzickaOsoba,omitempty"`
	PravnickaOsoba *PravnickaOsoba `json:"pravnickaOsoba,omitempty"`
}

// FyzickaOsoba is a natural person.
type FyzickaOsoba struct {
	Jmeno    string `json:"jmeno,omitempty"`
	Prijmeni string `json:"prijmeni,omitempty"`
}

// PravnickaOsoba is a legal person (company).
type PravnickaOsoba struct {
	Ico           string `json:"ico,omitempty"`
	ObchodniJmeno string `json:"obchodniJmeno,omitempty"`
}

// Podil is one share entry for a member.
type Podil struct {
	DatumVymazu    string  `json:"datumVymazu,omitempty"`
	VelikostPodilu *Amount `json:"velikostPodilu,omitempty"`
	Vklad          *Amount `json:"vklad,omitempty"`
	Splaceni       *Amount `json:"splaceni,omitempty"`
}

// Amount is a typed monetary/percentage value as ARES represents it.
type Amount struct {
	TypObnos string `json:"typObnos,omitempty"`
	Hodnota  string `json:"hodnota,omitempty"`
}

// Config controls the client's timeouts, retry policy, and rate limiting.
type Config struct {
	BaseURL                 string
	Timeout                 time.Duration
	MaxRetries              int
	BackoffBase             time.Duration
	BackoffCap              time.Duration
	MinDelayBetweenRequests time.Duration
}

// DefaultConfig matches spec §4.2/§5's stated defaults.
func DefaultConfig() Config {
	return Config{
		BaseURL:                 "https://ares.gov.cz/ekonomicke-subjekty-v-be/rest/ekonomicke-subjekty-vr",
		Timeout:                 20 * time.Second,
		MaxRetries:              4,
		BackoffBase:             700 * time.Millisecond,
		BackoffCap:              6 * time.Second,
		MinDelayBetweenRequests: 250 * time.Millisecond,
	}
}

// RegistryUnreachableError is returned once retries are exhausted.
type RegistryUnreachableError struct {
	ID    string
	Cause error
}

func (e *RegistryUnreachableError) Error() string {
	return fmt.Sprintf("registry: %s unreachable after retries: %v", e.ID, e.Cause)
}

func (e *RegistryUnreachableError) Unwrap() error { return e.Cause }

var nonDigitRe = regexp.MustCompile(`\D+`)

// NormalizeID strips non-digit characters and left-pads to 8 digits.
func NormalizeID(raw string) string {
	digits := nonDigitRe.ReplaceAllString(raw, "")
	for len(digits) < 8 {
		digits = "0" + digits
	}
	return digits
}

// Client fetches and caches registry payloads by ID.
type Client struct {
	httpClient *http.Client
	cfg        Config
	cache      *Cache

	mu            sync.Mutex
	lastRequestAt time.Time
}

// NewClient builds a Client backed by the given cache.
func NewClient(cfg Config, cache *Cache) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		cfg:        cfg,
		cache:      cache,
	}
}

// GetByID returns the payload for id, using the cache unless forceRefresh is
// set. A cached definitive-absence record (HTTP 400/404) is returned like
// any other cached payload, without a network call.
func (c *Client) GetByID(ctx context.Context, id string, forceRefresh bool) (*Payload, error) {
	normID := NormalizeID(id)

	if !forceRefresh {
		cached, ok, err := c.cache.Get(ctx, normID)
		if err != nil {
			return nil, err
		}
		if ok {
			return cached, nil
		}
	}

	url := fmt.Sprintf("%s/%s", strings.TrimRight(c.cfg.BaseURL, "/"), normID)

	var lastErr error
	for attempt := 0; attempt <= c.cfg.MaxRetries; attempt++ {
		c.throttle()

		payload, status, err := c.doRequest(ctx, url)
		switch {
		case err == nil && status == http.StatusOK:
			if putErr := c.cache.Put(ctx, normID, payload); putErr != nil {
				return nil, putErr
			}
			return payload, nil

		case err == nil && (status == http.StatusBadRequest || status == http.StatusNotFound):
			errPayload := &Payload{Error: fmt.Sprintf("HTTP %d", status), URL: url}
			if putErr := c.cache.Put(ctx, normID, errPayload); putErr != nil {
				return nil, putErr
			}
			return errPayload, nil

		case err != nil:
			lastErr = err

		default:
			lastErr = fmt.Errorf("registry: unexpected status %d", status)
		}

		if attempt < c.cfg.MaxRetries {
			if sleepErr := c.sleepBackoff(ctx, attempt); sleepErr != nil {
				return nil, sleepErr
			}
		}
	}

	return nil, &RegistryUnreachableError{ID: normID, Cause: lastErr}
}

// ForgetCached drops any cached entry for id so the next GetByID re-fetches.
func (c *Client) ForgetCached(ctx context.Context, id string) error {
	return c.cache.Delete(ctx, NormalizeID(id))
}

func (c *Client) throttle() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.lastRequestAt.IsZero() {
		if wait := c.cfg.MinDelayBetweenRequests - time.Since(c.lastRequestAt); wait > 0 {
			time.Sleep(wait)
		}
	}
	c.lastRequestAt = time.Now()
}

func (c *Client) sleepBackoff(ctx context.Context, attempt int) error {
	delay := time.Duration(float64(c.cfg.BackoffBase) * math.Pow(2, float64(attempt)))
	if delay > c.cfg.BackoffCap {
		delay = c.cfg.BackoffCap
	}
	select {
	case <-time.After(delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Client) doRequest(ctx context.Context, url string) (*Payload, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, resp.StatusCode, nil
	}

	var payload Payload
	if decErr := json.NewDecoder(resp.Body).Decode(&payload); decErr != nil {
		return nil, resp.StatusCode, fmt.Errorf("registry: decode response: %w", decErr)
	}
	return &payload, resp.StatusCode, nil
}

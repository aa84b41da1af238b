// file: internal/discogs/client.go
// version: 1.2.0
// guid: 1c2d3e4f-5a6b-7c8d-9e0f-1a2b3c4d5e6f

// Package discogs queries the Discogs database API as a secondary release
// source. It only participates when a personal access token is configured.
package discogs

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/barad1tos/GenreUpdater-sub004/internal/cache"
	"github.com/barad1tos/GenreUpdater-sub004/internal/models"
)

const (
	defaultBaseURL = "https://api.discogs.com"
	userAgent      = "GenreUpdater/2.0 +https://github.com/barad1tos/GenreUpdater-sub004"
	searchLimit    = 25
)

// SourceName identifies this client in candidate releases and trust maps.
const SourceName = "discogs"

// Client talks to the Discogs search API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	limiter    *rate.Limiter
	results    *cache.Cache[[]models.CandidateRelease]
}

// NewClient creates a Discogs client with the given personal access token.
// The DISCOGS_BASE_URL environment variable overrides the endpoint for tests.
func NewClient(token string, timeout time.Duration) *Client {
	baseURL := defaultBaseURL
	if v := os.Getenv("DISCOGS_BASE_URL"); v != "" {
		baseURL = strings.TrimRight(v, "/")
	}
	// Authenticated clients get 60 requests per minute.
	return &Client{
		baseURL:    baseURL,
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rate.Every(time.Minute/60), 1),
		results:    cache.New[[]models.CandidateRelease](30 * time.Minute),
	}
}

// Name implements the lookup source interface.
func (c *Client) Name() string { return SourceName }

type searchResponse struct {
	Results []struct {
		Title   string   `json:"title"` // "Artist - Album"
		Year    string   `json:"year"`
		Country string   `json:"country"`
		Format  []string `json:"format"`
		Genre   []string `json:"genre"`
	} `json:"results"`
}

// SearchReleases finds candidate releases for an artist/album pair.
func (c *Client) SearchReleases(ctx context.Context, artist, album string) ([]models.CandidateRelease, error) {
	if c.token == "" {
		return nil, nil
	}

	cacheKey := strings.ToLower(artist) + "\x00" + strings.ToLower(album)
	if cached, ok := c.results.Get(cacheKey); ok {
		return cached, nil
	}

	params := url.Values{
		"artist":       {artist},
		"release_title": {album},
		"type":         {"release"},
		"per_page":     {strconv.Itoa(searchLimit)},
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	endpoint := c.baseURL + "/database/search?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Authorization", "Discogs token="+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("discogs search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("discogs search: HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	var parsed searchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	candidates := make([]models.CandidateRelease, 0, len(parsed.Results))
	for _, r := range parsed.Results {
		year, _ := strconv.Atoi(r.Year)
		candidate := models.CandidateRelease{
			Source:  SourceName,
			Artist:  artistOf(r.Title),
			Title:   albumOf(r.Title),
			Year:    year,
			Country: r.Country,
			Type:    typeFromFormats(r.Format),
			Status:  statusFromFormats(r.Format),
			Reissue: hasFormat(r.Format, "reissue") || hasFormat(r.Format, "remastered"),
		}
		if len(r.Genre) > 0 {
			candidate.Genre = r.Genre[0]
		}
		candidates = append(candidates, candidate)
	}

	c.results.Set(cacheKey, candidates)
	return candidates, nil
}

// artistOf splits Discogs' combined "Artist - Album" title.
func artistOf(title string) string {
	if i := strings.Index(title, " - "); i >= 0 {
		return strings.TrimSpace(title[:i])
	}
	return ""
}

func albumOf(title string) string {
	if i := strings.Index(title, " - "); i >= 0 {
		return strings.TrimSpace(title[i+3:])
	}
	return title
}

func hasFormat(formats []string, want string) bool {
	for _, f := range formats {
		if strings.EqualFold(f, want) {
			return true
		}
	}
	return false
}

func typeFromFormats(formats []string) models.ReleaseType {
	switch {
	case hasFormat(formats, "compilation"):
		return models.ReleaseTypeCompilation
	case hasFormat(formats, "ep"):
		return models.ReleaseTypeEP
	case hasFormat(formats, "single"):
		return models.ReleaseTypeSingle
	case hasFormat(formats, "album"), hasFormat(formats, "lp"):
		return models.ReleaseTypeAlbum
	default:
		return models.ReleaseTypeOther
	}
}

func statusFromFormats(formats []string) models.ReleaseStatus {
	switch {
	case hasFormat(formats, "unofficial release"):
		return models.StatusBootleg
	case hasFormat(formats, "promo"):
		return models.StatusPromotional
	default:
		// Discogs doesn't carry an explicit status; assume official.
		return models.StatusOfficial
	}
}

// file: internal/musicbrainz/client.go
// version: 1.3.0
// guid: 9a0b1c2d-3e4f-5a6b-7c8d-9e0f1a2b3c4d

// Package musicbrainz queries the MusicBrainz web service for candidate
// releases and artist activity periods. All requests go through a shared
// rate limiter honoring the service's one-request-per-second policy.
package musicbrainz

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
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
	defaultBaseURL = "https://musicbrainz.org/ws/2"
	userAgent      = "GenreUpdater/2.0 (https://github.com/barad1tos/GenreUpdater-sub004)"
	searchLimit    = 25
)

// SourceName identifies this client in candidate releases and trust maps.
const SourceName = "musicbrainz"

// Client talks to the MusicBrainz API with rate limiting and an in-run
// response cache.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter

	releaseCache  *cache.Cache[[]models.CandidateRelease]
	activityCache *cache.Cache[int]
}

// NewClient creates a MusicBrainz client. The MUSICBRAINZ_BASE_URL
// environment variable overrides the API endpoint, used by tests and
// mirror deployments.
func NewClient(timeout time.Duration) *Client {
	baseURL := defaultBaseURL
	if v := os.Getenv("MUSICBRAINZ_BASE_URL"); v != "" {
		baseURL = strings.TrimRight(v, "/")
	}
	return &Client{
		baseURL:       baseURL,
		httpClient:    &http.Client{Timeout: timeout},
		limiter:       rate.NewLimiter(rate.Every(time.Second), 1),
		releaseCache:  cache.New[[]models.CandidateRelease](30 * time.Minute),
		activityCache: cache.New[int](2 * time.Hour),
	}
}

// Name implements the lookup source interface.
func (c *Client) Name() string { return SourceName }

// releaseSearchResponse mirrors the fields we read from /release.
type releaseSearchResponse struct {
	Releases []struct {
		Title          string `json:"title"`
		Date           string `json:"date"`
		Country        string `json:"country"`
		Status         string `json:"status"`
		Disambiguation string `json:"disambiguation"`
		ArtistCredit   []struct {
			Name string `json:"name"`
		} `json:"artist-credit"`
		ReleaseGroup struct {
			PrimaryType      string   `json:"primary-type"`
			SecondaryTypes   []string `json:"secondary-types"`
			FirstReleaseDate string   `json:"first-release-date"`
		} `json:"release-group"`
	} `json:"releases"`
}

// artistSearchResponse mirrors the fields we read from /artist.
type artistSearchResponse struct {
	Artists []struct {
		Name     string `json:"name"`
		Score    int    `json:"score"`
		LifeSpan struct {
			Begin string `json:"begin"`
			End   string `json:"end"`
		} `json:"life-span"`
	} `json:"artists"`
}

// SearchReleases finds candidate releases for an artist/album pair.
func (c *Client) SearchReleases(ctx context.Context, artist, album string) ([]models.CandidateRelease, error) {
	cacheKey := strings.ToLower(artist) + "\x00" + strings.ToLower(album)
	if cached, ok := c.releaseCache.Get(cacheKey); ok {
		return cached, nil
	}

	query := fmt.Sprintf(`artist:%q AND release:%q`, artist, album)
	params := url.Values{
		"query": {query},
		"fmt":   {"json"},
		"limit": {strconv.Itoa(searchLimit)},
	}

	var parsed releaseSearchResponse
	if err := c.getJSON(ctx, "/release", params, &parsed); err != nil {
		return nil, fmt.Errorf("musicbrainz release search: %w", err)
	}

	candidates := make([]models.CandidateRelease, 0, len(parsed.Releases))
	for _, r := range parsed.Releases {
		candidate := models.CandidateRelease{
			Source:         SourceName,
			Title:          r.Title,
			Year:           yearOf(r.Date),
			Type:           mapReleaseType(r.ReleaseGroup.PrimaryType, r.ReleaseGroup.SecondaryTypes),
			Status:         mapStatus(r.Status),
			Country:        r.Country,
			GroupFirstYear: yearOf(r.ReleaseGroup.FirstReleaseDate),
		}
		if len(r.ArtistCredit) > 0 {
			candidate.Artist = r.ArtistCredit[0].Name
		}
		candidate.Reissue = isReissue(candidate, r.Disambiguation)
		candidates = append(candidates, candidate)
	}

	c.releaseCache.Set(cacheKey, candidates)
	return candidates, nil
}

// ArtistActivityStart returns the year the artist began activity, or 0
// when MusicBrainz has no confident match.
func (c *Client) ArtistActivityStart(ctx context.Context, artist string) (int, error) {
	cacheKey := strings.ToLower(artist)
	if cached, ok := c.activityCache.Get(cacheKey); ok {
		return cached, nil
	}

	params := url.Values{
		"query": {fmt.Sprintf("artist:%q", artist)},
		"fmt":   {"json"},
		"limit": {"5"},
	}
	var parsed artistSearchResponse
	if err := c.getJSON(ctx, "/artist", params, &parsed); err != nil {
		return 0, fmt.Errorf("musicbrainz artist search: %w", err)
	}

	// Take the top hit only when the search score says it's a real match.
	if len(parsed.Artists) == 0 || parsed.Artists[0].Score < 90 {
		c.activityCache.Set(cacheKey, 0)
		return 0, nil
	}
	begin := yearOf(parsed.Artists[0].LifeSpan.Begin)
	c.activityCache.Set(cacheKey, begin)
	return begin, nil
}

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	endpoint := c.baseURL + path + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusServiceUnavailable {
		log.Printf("[WARN] MusicBrainz throttled request to %s", path)
		return fmt.Errorf("service unavailable (HTTP 503)")
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d from %s", resp.StatusCode, path)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// yearOf extracts the year from a MusicBrainz date, which may be
// "2003-09-15", "2003-09", or just "2003".
func yearOf(date string) int {
	if len(date) < 4 {
		return 0
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0
	}
	return year
}

func mapReleaseType(primary string, secondary []string) models.ReleaseType {
	for _, s := range secondary {
		switch strings.ToLower(s) {
		case "compilation":
			return models.ReleaseTypeCompilation
		case "live":
			return models.ReleaseTypeLive
		case "soundtrack":
			return models.ReleaseTypeSoundtrack
		case "remix":
			return models.ReleaseTypeRemix
		}
	}
	switch strings.ToLower(primary) {
	case "album":
		return models.ReleaseTypeAlbum
	case "ep":
		return models.ReleaseTypeEP
	case "single":
		return models.ReleaseTypeSingle
	case "":
		return models.ReleaseTypeOther
	default:
		return models.ReleaseTypeOther
	}
}

func mapStatus(status string) models.ReleaseStatus {
	switch strings.ToLower(status) {
	case "official":
		return models.StatusOfficial
	case "bootleg":
		return models.StatusBootleg
	case "promotion", "promotional":
		return models.StatusPromotional
	case "pseudo-release":
		return models.StatusPseudoRelease
	default:
		return models.StatusOther
	}
}

// isReissue flags releases dated after their group's first release, plus
// ones MusicBrainz editors annotated as reissues or remasters.
func isReissue(c models.CandidateRelease, disambiguation string) bool {
	if c.GroupFirstYear > 0 && c.Year > c.GroupFirstYear {
		return true
	}
	d := strings.ToLower(disambiguation)
	return strings.Contains(d, "reissue") || strings.Contains(d, "remaster") || strings.Contains(d, "re-release")
}

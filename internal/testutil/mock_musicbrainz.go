// file: internal/testutil/mock_musicbrainz.go
// version: 2.0.0
// guid: c3d4e5f6-a7b8-9012-cdef-345678901abc

// Package testutil provides shared helpers for integration-style tests.
package testutil

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// MockMusicBrainzServer creates an httptest.Server that mimics the
// MusicBrainz web service. The responses map keys are matched against the
// request URL using Contains; unmatched requests return 404.
func MockMusicBrainzServer(t *testing.T, responses map[string]string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for pattern, body := range responses {
			if strings.Contains(r.URL.String(), pattern) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(body))
				return
			}
		}
		http.NotFound(w, r)
	}))
}

// MusicBrainzFrengersResponse is a standard release search response for
// Mew's "Frengers".
const MusicBrainzFrengersResponse = `{
	"releases": [{
		"title": "Frengers",
		"date": "2003-04-07",
		"country": "DK",
		"status": "Official",
		"artist-credit": [{"name": "Mew"}],
		"release-group": {
			"primary-type": "Album",
			"first-release-date": "2003-04-07"
		}
	}]
}`

// MusicBrainzMewArtistResponse is a standard artist search response.
const MusicBrainzMewArtistResponse = `{
	"artists": [{
		"name": "Mew",
		"score": 100,
		"life-span": {"begin": "1995-01-01"}
	}]
}`

// MusicBrainzEmptyReleases returns no release results.
const MusicBrainzEmptyReleases = `{"releases":[]}`

// MusicBrainzEmptyArtists returns no artist results.
const MusicBrainzEmptyArtists = `{"artists":[]}`

// file: internal/models/release.go
// version: 1.2.0
// guid: 5b6c7d8e-9f0a-1b2c-3d4e-5f6a7b8c9d0e

package models

// ReleaseType classifies an external candidate release.
type ReleaseType string

// Release types reported by the lookup sources.
const (
	ReleaseTypeAlbum       ReleaseType = "album"
	ReleaseTypeEP          ReleaseType = "ep"
	ReleaseTypeSingle      ReleaseType = "single"
	ReleaseTypeCompilation ReleaseType = "compilation"
	ReleaseTypeLive        ReleaseType = "live"
	ReleaseTypeSoundtrack  ReleaseType = "soundtrack"
	ReleaseTypeRemix       ReleaseType = "remix"
	ReleaseTypeOther       ReleaseType = "other"
)

// ReleaseStatus is the publication status of a candidate release.
type ReleaseStatus string

// Release statuses reported by the lookup sources.
const (
	StatusOfficial      ReleaseStatus = "official"
	StatusBootleg       ReleaseStatus = "bootleg"
	StatusPromotional   ReleaseStatus = "promotional"
	StatusPseudoRelease ReleaseStatus = "pseudo-release"
	StatusOther         ReleaseStatus = "other"
)

// CandidateRelease is one external release proposed for a query. It exists
// only during a single resolution call and is never persisted.
type CandidateRelease struct {
	Source         string // lookup source identifier, e.g. "musicbrainz"
	Title          string
	Artist         string
	Year           int
	Type           ReleaseType
	Status         ReleaseStatus
	Country        string // ISO 3166-1 alpha-2, empty when unknown
	Reissue        bool
	GroupFirstYear int // release-group first-release year, 0 when unknown
	Genre          string
}

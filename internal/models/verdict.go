// file: internal/models/verdict.go
// version: 1.1.1
// guid: 7d8e9f0a-1b2c-3d4e-5f6a-7b8c9d0e1f2a

package models

import "time"

// VerdictKind is the closed set of outcomes the decision engine can produce.
// Every album resolution ends in exactly one of these.
type VerdictKind uint8

const (
	// VerdictNoAction means nothing changes and nothing is recorded.
	VerdictNoAction VerdictKind = iota
	// VerdictApply means the proposed year is written to the tracks.
	VerdictApply
	// VerdictApplyAndMark applies the proposed year and also queues the
	// album for verification (reissues, implausible existing years).
	VerdictApplyAndMark
	// VerdictPreserve keeps the existing year and queues the album.
	VerdictPreserve
	// VerdictSkip changes nothing and queues the album.
	VerdictSkip
)

// String implements fmt.Stringer for log and metric labels.
func (k VerdictKind) String() string {
	switch k {
	case VerdictNoAction:
		return "no_action"
	case VerdictApply:
		return "apply"
	case VerdictApplyAndMark:
		return "apply_and_mark"
	case VerdictPreserve:
		return "preserve"
	case VerdictSkip:
		return "skip"
	}
	return "unknown"
}

// Reason identifies why an album was queued for verification.
type Reason string

// Verification reasons produced by the decision chain.
const (
	ReasonAbsurdYearNoExisting  Reason = "absurd_year_no_existing"
	ReasonLowConfidenceNoAnchor Reason = "very_low_confidence_no_existing"
	ReasonSpecialAlbumType      Reason = "special_album_type"
	ReasonCompilationAlbumType  Reason = "compilation_album_type"
	ReasonReissueAlbumType      Reason = "reissue_album_type"
	ReasonImplausibleExisting   Reason = "implausible_existing_year"
	ReasonSuspiciousYearChange  Reason = "suspicious_year_change"
	ReasonNoYearFound           Reason = "no_year_found"
)

// Verdict is the immutable outcome of one album's resolution.
type Verdict struct {
	Kind   VerdictKind
	Year   int    // set for apply kinds
	Reason Reason // set for marked kinds
}

// Marked reports whether the verdict queues the album for verification.
func (v Verdict) Marked() bool {
	switch v.Kind {
	case VerdictApplyAndMark, VerdictPreserve, VerdictSkip:
		return true
	}
	return false
}

// Applies reports whether the verdict writes the proposed year.
func (v Verdict) Applies() bool {
	return v.Kind == VerdictApply || v.Kind == VerdictApplyAndMark
}

// VerificationEntry is one pending album in the verification queue. At most
// one live entry exists per album key; repeated marks accumulate attempts.
type VerificationEntry struct {
	Artist    string            `yaml:"artist"`
	Album     string            `yaml:"album"`
	Reason    Reason            `yaml:"reason"`
	Metadata  map[string]string `yaml:"metadata,omitempty"`
	Attempts  int               `yaml:"attempts"`
	FirstSeen time.Time         `yaml:"first_seen"`
	LastSeen  time.Time         `yaml:"last_seen"`
}

// Key returns the entry's normalized album key.
func (e VerificationEntry) Key() AlbumKey {
	return NewAlbumKey(e.Artist, e.Album)
}

// CacheEntry is a persisted resolved year. Entries are written only when
// their confidence clears the cache threshold; absence of an entry carries
// no information.
type CacheEntry struct {
	Artist     string
	Album      string
	Year       int
	Confidence int
	UpdatedAt  time.Time
}

// Key returns the entry's normalized album key.
func (e CacheEntry) Key() AlbumKey {
	return NewAlbumKey(e.Artist, e.Album)
}

// ChangeLogEntry records one applied mutation for the per-run change log.
type ChangeLogEntry struct {
	Timestamp  time.Time
	ChangeType string // always "year_update"
	Artist     string
	Album      string
	TrackName  string
	OldYear    string
	NewYear    string
}

package credit

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
)

// Record contains the credit metadata extracted for one song.
// An empty string means the corresponding label was absent from the
// song page; that is a normal result, not an error.
type Record struct {
	WorkName string // tie-up / work title, written to the comment field
	Lyricist string
	Composer string
	Arranger string
}

// Summary returns a one-line human-readable report of the fetched record.
// All four fields are always included, even when empty, so log readers can
// tell "absent" from "not fetched".
func (r Record) Summary() string {
	s := fmt.Sprintf("fetched credits: work=%q lyricist=%q composer=%q arranger=%q",
		r.WorkName, r.Lyricist, r.Composer, r.Arranger)
	if r.WorkName == "" {
		return "no tie-up info found; " + s
	}
	return s
}

// Empty reports whether the record carries no writable value at all.
func (r Record) Empty() bool {
	return r.WorkName == "" && r.Lyricist == "" && r.Composer == "" && r.Arranger == ""
}

// Candidate is one row of a search-results page, possibly corresponding
// to the track being resolved.
type Candidate struct {
	ID     string
	Title  string
	Artist string
}

// Source fetches candidate rows and credit records from a remote lyrics
// database. Implemented by internal/source/utanet; the interface lives
// here, where it is consumed.
type Source interface {
	Name() string
	Search(ctx context.Context, title string) ([]Candidate, error)
	Credits(ctx context.Context, songID string) (Record, error)
}

// Role is a semantic credit field independent of its physical tag encoding.
type Role int

const (
	RoleComment Role = iota
	RoleLyricist
	RoleComposer
	RoleRemixer
)

func (r Role) String() string {
	switch r {
	case RoleComment:
		return "comment"
	case RoleLyricist:
		return "lyricist"
	case RoleComposer:
		return "composer"
	case RoleRemixer:
		return "remixer"
	}
	return "unknown"
}

// ParseRole maps a user-facing role name to a Role.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "comment":
		return RoleComment, nil
	case "lyricist":
		return RoleLyricist, nil
	case "composer":
		return RoleComposer, nil
	case "remixer", "arranger":
		return RoleRemixer, nil
	}
	return 0, fmt.Errorf("unknown role %q (valid: comment, lyricist, composer, remixer)", s)
}

// Roles lists every role in planning order.
var Roles = []Role{RoleComment, RoleLyricist, RoleComposer, RoleRemixer}

// Format identifies an audio container kind. Each format has a fixed
// set of writable roles, see fields.go.
type Format int

const (
	FormatUnknown Format = iota
	FormatM4A
	FormatMP3
	FormatFLAC
)

func (f Format) String() string {
	switch f {
	case FormatM4A:
		return "m4a"
	case FormatMP3:
		return "mp3"
	case FormatFLAC:
		return "flac"
	}
	return "unknown"
}

// FormatFromPath derives the container format from a file extension.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".m4a":
		return FormatM4A
	case ".mp3":
		return FormatMP3
	case ".flac":
		return FormatFLAC
	}
	return FormatUnknown
}

// Mode selects how credit fields are laid out across tag roles.
type Mode int

const (
	// ModeIndividual writes each field to its native role where the
	// format supports it.
	ModeIndividual Mode = iota
	// ModeIntegrated additionally collapses all credit fields into a
	// single composer-field string of label="value" pairs.
	ModeIntegrated
)

// ParseMode accepts the user-facing mode names "A" (individual) and
// "B" (integrated).
func ParseMode(s string) (Mode, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "A", "INDIVIDUAL":
		return ModeIndividual, nil
	case "B", "INTEGRATED":
		return ModeIntegrated, nil
	}
	return 0, fmt.Errorf("unknown write mode %q (valid: A, B)", s)
}

// Policy carries the user-selected output options for one run.
type Policy struct {
	Mode Mode
	// Overwrite enables replacing an existing non-empty value, per role.
	Overwrite map[Role]bool
	// IntegrateUnwritable folds roles the format cannot store into the
	// composer field (individual mode only).
	IntegrateUnwritable bool
}

// TagAction is one planned write: a role, the value to store, and whether
// an existing value may be replaced. Never built with an empty value.
type TagAction struct {
	Role      Role
	Value     string
	Overwrite bool
}

// Snapshot is the displayable tag state of one file, refreshed after
// writes so callers can show the result.
type Snapshot struct {
	Title    string
	Artist   string
	Comment  string
	Lyricist string
	Composer string
	Remixer  string
}

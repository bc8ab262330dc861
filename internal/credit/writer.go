package credit

import (
	"fmt"
	"path/filepath"

	"go.senan.xyz/taglib"
)

// Some upstream tag writers leave a literal "0" in text fields they do
// not know; observed in the wild often enough that it counts as unset.
const unsetSentinel = "0"

// Status classifies the outcome of applying one TagAction to one file.
type Status int

const (
	StatusWritten Status = iota
	StatusSkipped
	StatusUnsupported
	StatusHeaderCreated
	StatusError
)

// Outcome reports what happened to one (file, role) write attempt.
// Terminal: only consumed for logging and result views.
type Outcome struct {
	File     string // base name, for log lines
	Role     Role
	Status   Status
	Value    string // value that was (or would have been) written
	Existing string // prior value, set for skips and overwrites
	Err      error  // set only for StatusError
}

func (o Outcome) String() string {
	switch o.Status {
	case StatusWritten:
		return fmt.Sprintf("[%s] %s written (existing=%q) -> %q", o.File, o.Role, o.Existing, o.Value)
	case StatusSkipped:
		if o.Value == "" {
			return fmt.Sprintf("[%s] %s empty value -> skipped", o.File, o.Role)
		}
		return fmt.Sprintf("[%s] %s existing=%q -> skipped", o.File, o.Role, o.Existing)
	case StatusUnsupported:
		return fmt.Sprintf("[%s] %s not supported by this format -> skipped", o.File, o.Role)
	case StatusHeaderCreated:
		return fmt.Sprintf("[%s] no tag header, created; %s -> %q", o.File, o.Role, o.Value)
	case StatusError:
		return fmt.Sprintf("[%s] %s write error: %v", o.File, o.Role, o.Err)
	}
	return fmt.Sprintf("[%s] %s unknown outcome", o.File, o.Role)
}

// Apply performs one planned tag write against the file's container.
//
// The universal rule across formats and roles: an absent value or the
// literal "0" counts as unset; the write happens when the action allows
// overwriting or the current value is unset, otherwise the action is
// skipped and the existing value reported. Roles the format cannot store
// return StatusUnsupported without touching the container. Container
// faults surface as StatusError and must not abort the rest of the batch.
func Apply(path string, f Format, a TagAction) Outcome {
	out := Outcome{File: filepath.Base(path), Role: a.Role, Value: a.Value}

	if a.Value == "" {
		out.Status = StatusSkipped
		return out
	}

	key, ok := FieldKey(f, a.Role)
	if !ok {
		out.Status = StatusUnsupported
		return out
	}

	tags, err := taglib.ReadTags(path)
	if err != nil {
		out.Status = StatusError
		out.Err = fmt.Errorf("failed to read tags: %w", err)
		return out
	}

	existing := firstTag(tags, key)
	out.Existing = existing

	if !a.Overwrite && existing != "" && existing != unsetSentinel {
		out.Status = StatusSkipped
		return out
	}

	if err := taglib.WriteTags(path, map[string][]string{key: {a.Value}}, 0); err != nil {
		out.Status = StatusError
		out.Err = fmt.Errorf("failed to write tag: %w", err)
		return out
	}

	// An empty property map means the file carried no tag block at all;
	// the write above created it. A populated map with only the target
	// key missing is an ordinary write, not header creation.
	if len(tags) == 0 {
		out.Status = StatusHeaderCreated
	} else {
		out.Status = StatusWritten
	}
	return out
}

// ReadSnapshot reads the displayable tag state of a file: title, artist,
// and the four credit roles (empty for roles the format cannot store).
func ReadSnapshot(path string) (Snapshot, error) {
	tags, err := taglib.ReadTags(path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to read tags from %s: %w", path, err)
	}

	f := FormatFromPath(path)
	snap := Snapshot{
		Title:  firstTag(tags, taglib.Title),
		Artist: firstTag(tags, taglib.Artist),
	}
	if key, ok := FieldKey(f, RoleComment); ok {
		snap.Comment = firstTag(tags, key)
	}
	if key, ok := FieldKey(f, RoleLyricist); ok {
		snap.Lyricist = firstTag(tags, key)
	}
	if key, ok := FieldKey(f, RoleComposer); ok {
		snap.Composer = firstTag(tags, key)
	}
	if key, ok := FieldKey(f, RoleRemixer); ok {
		snap.Remixer = firstTag(tags, key)
	}
	return snap, nil
}

func firstTag(tags map[string][]string, key string) string {
	if vals, ok := tags[key]; ok && len(vals) > 0 {
		return vals[0]
	}
	return ""
}

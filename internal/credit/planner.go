package credit

import (
	"fmt"
	"strings"
)

// PlanActions decides which tag writes to perform for one file, given the
// fetched record, the file's container format, and the run policy.
// Actions come out in write order: lyricist, composer, remixer, comment.
// An action is never emitted for an empty value or for a role the format
// cannot store (unwritable roles are folded into the composer field when
// the policy asks for it).
func PlanActions(rec Record, f Format, p Policy) []TagAction {
	var actions []TagAction
	add := func(role Role, value string) {
		if value == "" {
			return
		}
		actions = append(actions, TagAction{
			Role:      role,
			Value:     value,
			Overwrite: p.Overwrite[role],
		})
	}

	if Writable(f, RoleLyricist) {
		add(RoleLyricist, rec.Lyricist)
	}

	switch p.Mode {
	case ModeIntegrated:
		add(RoleComposer, IntegratedComposer(rec))
	default: // ModeIndividual
		if p.IntegrateUnwritable {
			// Folding is anchored on the composer; with no composer
			// there is nothing to fold into.
			if rec.Composer != "" {
				add(RoleComposer, foldedComposer(f, rec))
			}
		} else {
			add(RoleComposer, rec.Composer)
		}
	}

	if Writable(f, RoleRemixer) {
		add(RoleRemixer, rec.Arranger)
	}

	add(RoleComment, rec.WorkName)

	return actions
}

// foldedComposer combines the format's unwritable role into the composer
// value. m4a cannot store a remixer, flac cannot store a lyricist; mp3
// stores everything and folds nothing.
func foldedComposer(f Format, rec Record) string {
	switch f {
	case FormatM4A:
		if rec.Arranger == rec.Composer || rec.Arranger == "" {
			return rec.Composer
		}
		return rec.Composer + " / " + rec.Arranger
	case FormatFLAC:
		if rec.Lyricist == rec.Composer || rec.Lyricist == "" {
			return rec.Composer
		}
		return rec.Lyricist + " / " + rec.Composer
	}
	return rec.Composer
}

// IntegratedComposer builds the mode-B composer value: one label="value"
// pair per non-empty credit field, space separated, e.g.
// 作詞="X" 作曲="Y" 編曲="Z". Returns "" when the record has no credits.
func IntegratedComposer(rec Record) string {
	var parts []string
	if rec.Lyricist != "" {
		parts = append(parts, fmt.Sprintf("作詞=%q", rec.Lyricist))
	}
	if rec.Composer != "" {
		parts = append(parts, fmt.Sprintf("作曲=%q", rec.Composer))
	}
	if rec.Arranger != "" {
		parts = append(parts, fmt.Sprintf("編曲=%q", rec.Arranger))
	}
	return strings.Join(parts, " ")
}

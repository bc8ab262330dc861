package credit

// Tag property keys as understood by taglib, which maps them onto each
// container's native storage (ID3v2 frames for MP3, Vorbis comments for
// FLAC, atoms for M4A). Reads and writes go through the same property
// key, so the physical encoding never leaks out; this table only decides
// which (format, role) pairs exist at all.
const (
	keyComment   = "COMMENT"
	keyLyricist  = "LYRICIST"
	keyComposer  = "COMPOSER"
	keyMixArtist = "MIXARTIST"
)

// fieldKeys is the per-format capability table. A missing entry means the
// format cannot store that role: m4a has no remixer atom and flac players
// in the target DJ software ignore LYRICIST.
var fieldKeys = map[Format]map[Role]string{
	FormatM4A: {
		RoleComment:  keyComment,
		RoleLyricist: keyLyricist,
		RoleComposer: keyComposer,
	},
	FormatMP3: {
		RoleComment:  keyComment,
		RoleLyricist: keyLyricist,
		RoleComposer: keyComposer,
		RoleRemixer:  keyMixArtist,
	},
	FormatFLAC: {
		RoleComment:  keyComment,
		RoleComposer: keyComposer,
		RoleRemixer:  keyMixArtist,
	},
}

// FieldKey returns the tag property key for a role in the given format,
// or ok=false when the format cannot store the role.
func FieldKey(f Format, r Role) (key string, ok bool) {
	key, ok = fieldKeys[f][r]
	return key, ok
}

// Writable reports whether the format can store the role at all.
func Writable(f Format, r Role) bool {
	_, ok := fieldKeys[f][r]
	return ok
}

package credit

import (
	"reflect"
	"testing"
)

func TestPlanActionsIndividual(t *testing.T) {
	rec := Record{
		WorkName: "アニメ主題歌",
		Lyricist: "作詞者",
		Composer: "作曲者",
		Arranger: "編曲者",
	}
	policy := Policy{Mode: ModeIndividual}

	tests := []struct {
		name   string
		format Format
		want   []TagAction
	}{
		{
			name:   "mp3 stores every role",
			format: FormatMP3,
			want: []TagAction{
				{Role: RoleLyricist, Value: "作詞者"},
				{Role: RoleComposer, Value: "作曲者"},
				{Role: RoleRemixer, Value: "編曲者"},
				{Role: RoleComment, Value: "アニメ主題歌"},
			},
		},
		{
			name:   "m4a drops the arranger",
			format: FormatM4A,
			want: []TagAction{
				{Role: RoleLyricist, Value: "作詞者"},
				{Role: RoleComposer, Value: "作曲者"},
				{Role: RoleComment, Value: "アニメ主題歌"},
			},
		},
		{
			name:   "flac drops the lyricist",
			format: FormatFLAC,
			want: []TagAction{
				{Role: RoleComposer, Value: "作曲者"},
				{Role: RoleRemixer, Value: "編曲者"},
				{Role: RoleComment, Value: "アニメ主題歌"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PlanActions(rec, tt.format, policy)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("PlanActions() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestPlanActionsFolding(t *testing.T) {
	policy := Policy{Mode: ModeIndividual, IntegrateUnwritable: true}

	tests := []struct {
		name         string
		format       Format
		rec          Record
		wantComposer string
	}{
		{
			name:         "m4a folds arranger into composer",
			format:       FormatM4A,
			rec:          Record{Composer: "作曲者", Arranger: "編曲者"},
			wantComposer: "作曲者 / 編曲者",
		},
		{
			name:         "m4a same person not repeated",
			format:       FormatM4A,
			rec:          Record{Composer: "同一人物", Arranger: "同一人物"},
			wantComposer: "同一人物",
		},
		{
			name:         "m4a missing arranger",
			format:       FormatM4A,
			rec:          Record{Composer: "作曲者"},
			wantComposer: "作曲者",
		},
		{
			name:         "flac folds lyricist before composer",
			format:       FormatFLAC,
			rec:          Record{Lyricist: "作詞者", Composer: "作曲者"},
			wantComposer: "作詞者 / 作曲者",
		},
		{
			name:         "flac same person not repeated",
			format:       FormatFLAC,
			rec:          Record{Lyricist: "同一人物", Composer: "同一人物"},
			wantComposer: "同一人物",
		},
		{
			name:         "mp3 folds nothing",
			format:       FormatMP3,
			rec:          Record{Lyricist: "作詞者", Composer: "作曲者", Arranger: "編曲者"},
			wantComposer: "作曲者",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actions := PlanActions(tt.rec, tt.format, policy)
			got, ok := composerValue(actions)
			if !ok {
				t.Fatalf("PlanActions() produced no composer action: %+v", actions)
			}
			if got != tt.wantComposer {
				t.Errorf("composer value = %q, want %q", got, tt.wantComposer)
			}
		})
	}
}

func TestPlanActionsFoldingNeedsComposer(t *testing.T) {
	// Folding is anchored on the composer field; a record without a
	// composer must not produce a composer action even when the
	// unwritable role is set.
	policy := Policy{Mode: ModeIndividual, IntegrateUnwritable: true}
	actions := PlanActions(Record{Lyricist: "作詞者"}, FormatFLAC, policy)
	if _, ok := composerValue(actions); ok {
		t.Errorf("composer action emitted without a composer credit: %+v", actions)
	}
}

func TestPlanActionsIntegrated(t *testing.T) {
	rec := Record{
		Lyricist: "作詞者",
		Composer: "作曲者",
		Arranger: "編曲者",
	}
	actions := PlanActions(rec, FormatMP3, Policy{Mode: ModeIntegrated})

	got, ok := composerValue(actions)
	if !ok {
		t.Fatalf("PlanActions() produced no composer action: %+v", actions)
	}
	want := `作詞="作詞者" 作曲="作曲者" 編曲="編曲者"`
	if got != want {
		t.Errorf("integrated composer = %q, want %q", got, want)
	}

	// The native fields are still written alongside the integrated tag.
	if actions[0].Role != RoleLyricist || actions[0].Value != "作詞者" {
		t.Errorf("expected lyricist action first, got %+v", actions[0])
	}
}

func TestIntegratedComposerOmitsEmptyFields(t *testing.T) {
	tests := []struct {
		name string
		rec  Record
		want string
	}{
		{
			name: "all fields",
			rec:  Record{Lyricist: "A", Composer: "B", Arranger: "C"},
			want: `作詞="A" 作曲="B" 編曲="C"`,
		},
		{
			name: "no arranger",
			rec:  Record{Lyricist: "A", Composer: "B"},
			want: `作詞="A" 作曲="B"`,
		},
		{
			name: "composer only",
			rec:  Record{Composer: "B"},
			want: `作曲="B"`,
		},
		{
			name: "empty record",
			rec:  Record{},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IntegratedComposer(tt.rec); got != tt.want {
				t.Errorf("IntegratedComposer() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPlanActionsEmptyRecord(t *testing.T) {
	for _, f := range []Format{FormatMP3, FormatM4A, FormatFLAC} {
		if actions := PlanActions(Record{}, f, Policy{Mode: ModeIndividual}); len(actions) != 0 {
			t.Errorf("PlanActions(empty, %v) = %+v, want none", f, actions)
		}
	}
}

func TestPlanActionsNeverEmitsEmptyValue(t *testing.T) {
	recs := []Record{
		{},
		{Lyricist: "A"},
		{WorkName: "W"},
		{Composer: "B", Arranger: "C"},
	}
	for _, rec := range recs {
		for _, f := range []Format{FormatMP3, FormatM4A, FormatFLAC} {
			for _, mode := range []Mode{ModeIndividual, ModeIntegrated} {
				for _, a := range PlanActions(rec, f, Policy{Mode: mode}) {
					if a.Value == "" {
						t.Errorf("empty value for role %v, rec %+v, format %v, mode %v", a.Role, rec, f, mode)
					}
				}
			}
		}
	}
}

func TestPlanActionsOverwriteFlags(t *testing.T) {
	rec := Record{Lyricist: "A", Composer: "B"}
	policy := Policy{
		Mode:      ModeIndividual,
		Overwrite: map[Role]bool{RoleComposer: true},
	}
	for _, a := range PlanActions(rec, FormatMP3, policy) {
		want := a.Role == RoleComposer
		if a.Overwrite != want {
			t.Errorf("role %v overwrite = %v, want %v", a.Role, a.Overwrite, want)
		}
	}
}

func composerValue(actions []TagAction) (string, bool) {
	for _, a := range actions {
		if a.Role == RoleComposer {
			return a.Value, true
		}
	}
	return "", false
}

package credit

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"creditget/internal/logger"
)

// fakeSource returns canned search rows without touching the network.
type fakeSource struct {
	cands     []Candidate
	searchErr error
}

func (f *fakeSource) Name() string { return "fake" }

func (f *fakeSource) Search(ctx context.Context, title string) ([]Candidate, error) {
	return f.cands, f.searchErr
}

func (f *fakeSource) Credits(ctx context.Context, songID string) (Record, error) {
	return Record{}, nil
}

func newTestResolver(src Source) *Resolver {
	return NewResolver(src, logger.New(false))
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name   string
		cands  []Candidate
		title  string
		artist string
		wantID string
	}{
		{
			name: "exact match",
			cands: []Candidate{
				{ID: "100", Title: "残酷な天使のテーゼ", Artist: "高橋洋子"},
			},
			title:  "残酷な天使のテーゼ",
			artist: "高橋洋子",
			wantID: "100",
		},
		{
			name: "earliest row wins on tie",
			cands: []Candidate{
				{ID: "1", Title: "Love", Artist: "Aaa Band"},
				{ID: "2", Title: "Love", Artist: "Aaa Band"},
			},
			title:  "Love",
			artist: "Aaa Band",
			wantID: "1",
		},
		{
			name: "exact title beats prefix title",
			cands: []Candidate{
				{ID: "1", Title: "Love Story", Artist: "Aaa Band"},
				{ID: "2", Title: "Love", Artist: "Aaa Band"},
			},
			title:  "Love",
			artist: "Aaa Band",
			wantID: "2",
		},
		{
			name: "prefix title beats substring title",
			cands: []Candidate{
				{ID: "1", Title: "True Love", Artist: "Aaa Band"},
				{ID: "2", Title: "Love Story", Artist: "Aaa Band"},
			},
			title:  "Love",
			artist: "Aaa Band",
			wantID: "2",
		},
		{
			name: "artist prefix disambiguates shared title",
			cands: []Candidate{
				{ID: "1", Title: "Love", Artist: "Zzz Group"},
				{ID: "2", Title: "Love", Artist: "Aaa Band"},
			},
			title:  "Love",
			artist: "Aaa Band feat. Someone",
			wantID: "2",
		},
		{
			name: "cv annotation stripped before matching",
			cands: []Candidate{
				{ID: "7", Title: "キャラソン", Artist: "キャラクター(CV: 声優)"},
			},
			title:  "キャラソン",
			artist: "キャラクター (CV: 声優)",
			wantID: "7",
		},
		{
			name: "short artist uses whole name as prefix",
			cands: []Candidate{
				{ID: "3", Title: "Love", Artist: "Ai"},
			},
			title:  "Love",
			artist: "Ai",
			wantID: "3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestResolver(&fakeSource{cands: tt.cands})
			id, err := r.Resolve(context.Background(), tt.title, tt.artist)
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if id != tt.wantID {
				t.Errorf("Resolve() = %q, want %q", id, tt.wantID)
			}
		})
	}
}

func TestResolveNoCandidates(t *testing.T) {
	r := newTestResolver(&fakeSource{})
	_, err := r.Resolve(context.Background(), "Unknown Song", "Nobody")
	if !errors.Is(err, ErrNoCandidates) {
		t.Errorf("Resolve() error = %v, want ErrNoCandidates", err)
	}
}

func TestResolveNoTitleMatch(t *testing.T) {
	r := newTestResolver(&fakeSource{cands: []Candidate{
		{ID: "1", Title: "Completely Different", Artist: "Aaa Band"},
	}})
	_, err := r.Resolve(context.Background(), "Love", "Aaa Band")
	if !errors.Is(err, ErrNoCandidates) {
		t.Errorf("Resolve() error = %v, want ErrNoCandidates", err)
	}
}

func TestResolveNoArtistMatch(t *testing.T) {
	r := newTestResolver(&fakeSource{cands: []Candidate{
		{ID: "1", Title: "Love", Artist: "Zzz Group"},
		{ID: "2", Title: "Love", Artist: "Yyy Unit"},
	}})
	_, err := r.Resolve(context.Background(), "Love", "Aaa Band")
	if !errors.Is(err, ErrNoArtistMatch) {
		t.Fatalf("Resolve() error = %v, want ErrNoArtistMatch", err)
	}
	// The error should name the nearest candidates for diagnostics.
	if !strings.Contains(err.Error(), "Love") {
		t.Errorf("error %q should list the closest candidate titles", err)
	}
}

func TestResolveSearchError(t *testing.T) {
	wantErr := fmt.Errorf("connection refused")
	r := newTestResolver(&fakeSource{searchErr: wantErr})
	_, err := r.Resolve(context.Background(), "Love", "Aaa Band")
	if err == nil || !strings.Contains(err.Error(), "search fetch error") {
		t.Errorf("Resolve() error = %v, want wrapped search fetch error", err)
	}
	if !errors.Is(err, wantErr) {
		t.Errorf("Resolve() error should wrap the source error, got %v", err)
	}
}

package credit

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"creditget/internal/logger"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Negative resolver results. These are normal outcomes with a reason, not
// faults; callers log them and move on to the next file.
var (
	ErrNoCandidates  = errors.New("no candidates found")
	ErrNoArtistMatch = errors.New("no candidate with matching artist prefix found")
)

// Resolver matches a local (title, artist) pair to a remote song ID using
// staged title matching and an artist-prefix filter.
type Resolver struct {
	source Source
	logger *logger.Logger
}

// NewResolver creates a Resolver backed by the given source.
func NewResolver(src Source, log *logger.Logger) *Resolver {
	return &Resolver{source: src, logger: log}
}

// Resolve searches the source for the track title and picks the best
// matching candidate.
//
// Candidates are pooled in three tiers, in order and with duplicates
// allowed: normalized-title equality, then prefix match, then substring
// match. The pool is then filtered to candidates whose normalized artist
// starts with the first three runes of the normalized input artist, and
// the first survivor wins; because the pool is tier-ordered, an exact
// title match always beats a prefix match beats a substring match, and
// within a tier the earliest search row wins. Many recordings share a
// title, so the artist prefix is the final disambiguator.
func (r *Resolver) Resolve(ctx context.Context, title, artist string) (string, error) {
	cands, err := r.source.Search(ctx, title)
	if err != nil {
		return "", fmt.Errorf("search fetch error: %w", err)
	}
	if len(cands) == 0 {
		return "", ErrNoCandidates
	}

	ntitle := Normalize(title)
	nartist := Normalize(artist)
	pref := artistPrefix(nartist)

	var pool []Candidate
	for _, c := range cands {
		if Normalize(c.Title) == ntitle {
			pool = append(pool, c)
		}
	}
	for _, c := range cands {
		if strings.HasPrefix(Normalize(c.Title), ntitle) {
			pool = append(pool, c)
		}
	}
	for _, c := range cands {
		if strings.Contains(Normalize(c.Title), ntitle) {
			pool = append(pool, c)
		}
	}
	if len(pool) == 0 {
		return "", ErrNoCandidates
	}

	for _, c := range pool {
		if strings.HasPrefix(Normalize(c.Artist), pref) {
			r.logger.Debug("  resolved %q / %q -> song %s (%q by %q)", title, artist, c.ID, c.Title, c.Artist)
			return c.ID, nil
		}
	}

	return "", fmt.Errorf("%w (closest: %s)", ErrNoArtistMatch, closestCandidates(cands, title))
}

// artistPrefix returns the first three runes of the normalized artist,
// or the whole string when shorter.
func artistPrefix(nartist string) string {
	runes := []rune(nartist)
	if len(runes) > 3 {
		runes = runes[:3]
	}
	return string(runes)
}

// closestCandidates builds a diagnostic dump of the candidates nearest to
// the input title, so a failed resolve still tells the user what the
// search actually returned.
func closestCandidates(cands []Candidate, title string) string {
	titles := make([]string, len(cands))
	for i, c := range cands {
		titles[i] = c.Title
	}

	ranks := fuzzy.RankFindNormalizedFold(title, titles)
	sort.Sort(ranks)

	var picks []string
	seen := make(map[int]bool)
	for _, rank := range ranks {
		if len(picks) == 3 {
			break
		}
		if seen[rank.OriginalIndex] {
			continue
		}
		seen[rank.OriginalIndex] = true
		c := cands[rank.OriginalIndex]
		picks = append(picks, fmt.Sprintf("%q by %q", c.Title, c.Artist))
	}

	// Nothing even fuzzy-matched; fall back to the first raw rows.
	if len(picks) == 0 {
		for i, c := range cands {
			if i == 3 {
				break
			}
			picks = append(picks, fmt.Sprintf("%q by %q", c.Title, c.Artist))
		}
	}

	return strings.Join(picks, ", ")
}

package filter

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-pkgz/lgr"
	"golang.org/x/sync/errgroup"

	"github.com/umputun/feedguard/pkg/config"
	"github.com/umputun/feedguard/pkg/domain"
	"github.com/umputun/feedguard/pkg/feed"
)

//go:generate moq -out mocks/classifier.go -pkg mocks -skip-ensure -fmt goimports . Classifier

// Classifier checks if an entry contains any of the content types
type Classifier interface {
	CheckEntry(ctx context.Context, entry domain.Entry, contentTypes []string) (domain.Verdict, error)
}

// Rules defines which entries stay in the feed. All non-empty rules must pass for an entry to be kept.
type Rules struct {
	IncludeTypes []string // keep entries containing any of these types
	ExcludeTypes []string // drop entries containing any of these types
	IncludeWords []string // keep entries with any of these words in title
	ExcludeWords []string // drop entries with any of these words in title
}

// Empty checks if rules don't filter anything
func (r Rules) Empty() bool {
	return len(r.IncludeTypes) == 0 && len(r.ExcludeTypes) == 0 && len(r.IncludeWords) == 0 && len(r.ExcludeWords) == 0
}

// Result is a classification outcome of a single entry
type Result struct {
	Entry   domain.Entry
	Verdict domain.Verdict
	Err     error
}

// Service filters feeds by keyword and content type rules
type Service struct {
	classifier    Classifier
	maxConcurrent int
	onError       string
}

// NewService makes filtering service. onError is one of config.OnError* policies, fail if empty.
func NewService(classifier Classifier, maxConcurrent int, onError string) *Service {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	if onError == "" {
		onError = config.OnErrorFail
	}
	return &Service{classifier: classifier, maxConcurrent: maxConcurrent, onError: onError}
}

// Apply returns a new feed with entries passing the rules. Keyword rules go first, so entries dropped
// by them are never classified.
func (s *Service) Apply(ctx context.Context, f *feed.Feed, rules Rules) (*feed.Feed, error) {
	if rules.Empty() {
		return f, nil
	}

	entries := f.Entries()
	keep := make([]bool, len(entries))
	for i, e := range entries {
		keep[i] = matchWords(e.Title, rules.IncludeWords, rules.ExcludeWords)
	}

	if err := s.applyTypes(ctx, entries, keep, rules.IncludeTypes, true); err != nil {
		return nil, err
	}
	if err := s.applyTypes(ctx, entries, keep, rules.ExcludeTypes, false); err != nil {
		return nil, err
	}

	res, err := f.Keep(keep)
	if err != nil {
		return nil, fmt.Errorf("filter feed %s: %w", f.URL(), err)
	}
	lgr.Printf("[DEBUG] filtered %s, %d of %d entries kept", f.URL(), res.Len(), len(entries))
	return res, nil
}

// applyTypes classifies entries still kept and updates keep with verdicts.
// include keeps entries with positive verdict, otherwise entries with positive verdict are dropped.
func (s *Service) applyTypes(ctx context.Context, entries []domain.Entry, keep []bool, types []string, include bool) error {
	if len(types) == 0 {
		return nil
	}

	idx := make([]int, 0, len(entries))
	candidates := make([]domain.Entry, 0, len(entries))
	for i, e := range entries {
		if keep[i] {
			idx = append(idx, i)
			candidates = append(candidates, e)
		}
	}

	for i, r := range s.Classify(ctx, candidates, types) {
		pos := idx[i]
		if r.Err != nil {
			switch s.onError {
			case config.OnErrorDrop:
				lgr.Printf("[WARN] dropping %q, %v", r.Entry.Title, r.Err)
				keep[pos] = false
			case config.OnErrorKeep:
				lgr.Printf("[WARN] keeping %q, %v", r.Entry.Title, r.Err)
			default:
				return fmt.Errorf("check entry %q: %w", r.Entry.Title, r.Err)
			}
			continue
		}
		keep[pos] = r.Verdict.Contains == include
	}
	return nil
}

// Classify checks all entries against types concurrently and returns results in the entries order.
// Classification is not interrupted if ctx is canceled, started calls finish or time out on their own.
func (s *Service) Classify(ctx context.Context, entries []domain.Entry, types []string) []Result {
	ctx = context.WithoutCancel(ctx)
	results := make([]Result, len(entries))

	var eg errgroup.Group
	eg.SetLimit(s.maxConcurrent)
	for i, e := range entries {
		eg.Go(func() error {
			v, err := s.classifier.CheckEntry(ctx, e, types)
			results[i] = Result{Entry: e, Verdict: v, Err: err}
			return nil
		})
	}
	_ = eg.Wait() // errors are kept per entry
	return results
}

// matchWords checks title against keyword rules, case-insensitive substring match
func matchWords(title string, include, exclude []string) bool {
	title = strings.ToLower(title)
	if len(include) > 0 && !containsAny(title, include) {
		return false
	}
	return !containsAny(title, exclude)
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" && strings.Contains(s, w) {
			return true
		}
	}
	return false
}

// SplitList splits comma-separated list, trimming spaces and skipping empty values
func SplitList(s string) []string {
	var res []string
	for _, v := range strings.Split(s, ",") {
		if v = strings.TrimSpace(v); v != "" {
			res = append(res, v)
		}
	}
	return res
}

// SPDX-License-Identifier: MPL-2.0

package resolve

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/rapidcopper/rapidcopper/internal/catalog"
)

// MaxCandidates is the largest candidate list Resolve returns.
const MaxCandidates = 5

const (
	// MatchSubstring keeps names containing the token anywhere.
	MatchSubstring MatchPolicy = "substring"
	// MatchSubsequence keeps names containing every character of the token in order.
	MatchSubsequence MatchPolicy = "subsequence"
)

// ErrInvalidMatchPolicy is the sentinel error wrapped by InvalidMatchPolicyError.
var ErrInvalidMatchPolicy = errors.New("invalid match policy")

type (
	// MatchPolicy selects how a token filters catalog names.
	MatchPolicy string

	// InvalidMatchPolicyError is returned when a MatchPolicy value is not recognized.
	InvalidMatchPolicyError struct {
		Value MatchPolicy
	}

	// Candidate is a ranked catalog entry.
	Candidate struct {
		catalog.Entry
		// Distance is the Levenshtein distance between the token and Name.
		Distance int
	}

	// Resolver ranks catalog entries against a token. It only reads the store.
	Resolver struct {
		store  catalog.Store
		policy MatchPolicy
		limit  int
	}

	// Option configures a Resolver.
	Option func(*Resolver)
)

// WithMatchPolicy sets the match policy. The default is MatchSubstring.
func WithMatchPolicy(p MatchPolicy) Option {
	return func(r *Resolver) {
		r.policy = p
	}
}

// WithLimit caps the candidate list below MaxCandidates.
func WithLimit(n int) Option {
	return func(r *Resolver) {
		if n > 0 && n < MaxCandidates {
			r.limit = n
		}
	}
}

// New creates a resolver over store.
func New(store catalog.Store, opts ...Option) *Resolver {
	r := &Resolver{store: store, policy: MatchSubstring, limit: MaxCandidates}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Policy returns the active match policy.
func (r *Resolver) Policy() MatchPolicy { return r.policy }

// Resolve returns at most MaxCandidates entries of the given kinds matching
// token, ordered by non-decreasing edit distance. An empty result is not an
// error.
func (r *Resolver) Resolve(ctx context.Context, kinds catalog.KindSet, token string) ([]Candidate, error) {
	pattern, err := r.policy.Pattern(token)
	if err != nil {
		return nil, err
	}
	entries, err := r.store.Query(ctx, kinds, pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to query catalog for %q: %w", token, err)
	}
	return Rank(token, entries, r.limit), nil
}

// Rank orders entries by Levenshtein distance to token, keeping the input order
// for ties, and truncates the result to limit entries.
func Rank(token string, entries []catalog.Entry, limit int) []Candidate {
	candidates := make([]Candidate, len(entries))
	for i, e := range entries {
		candidates[i] = Candidate{Entry: e, Distance: levenshtein.ComputeDistance(token, e.Name)}
	}
	slices.SortStableFunc(candidates, func(a, b Candidate) int {
		return a.Distance - b.Distance
	})
	if limit >= 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates
}

// KindsFor returns the record sets a pipeline stage may resolve against.
// Applications take no arguments and cannot receive an upstream value, so they
// are only offered to a bare first stage.
func KindsFor(stage, argc int) catalog.KindSet {
	switch {
	case stage > 0:
		return catalog.NewKindSet(catalog.KindPipe)
	case argc > 0:
		return catalog.NewKindSet(catalog.KindAction)
	default:
		return catalog.NewKindSet(catalog.KindApplication, catalog.KindAction)
	}
}

// Pattern builds the catalog filter for token under the policy.
func (p MatchPolicy) Pattern(token string) (catalog.Pattern, error) {
	switch p {
	case "", MatchSubstring:
		return catalog.SubstringPattern(token), nil
	case MatchSubsequence:
		return catalog.SubsequencePattern(token), nil
	default:
		return catalog.Pattern{}, &InvalidMatchPolicyError{Value: p}
	}
}

// String returns the string representation of the MatchPolicy.
func (p MatchPolicy) String() string { return string(p) }

// IsValid returns whether the MatchPolicy is one of the defined policies,
// and a list of validation errors if it is not.
func (p MatchPolicy) IsValid() (bool, []error) {
	switch p {
	case MatchSubstring, MatchSubsequence:
		return true, nil
	default:
		return false, []error{&InvalidMatchPolicyError{Value: p}}
	}
}

// ParseMatchPolicy parses a policy name, ignoring case and surrounding space.
func ParseMatchPolicy(s string) (MatchPolicy, error) {
	p := MatchPolicy(strings.ToLower(strings.TrimSpace(s)))
	if p == "" {
		return MatchSubstring, nil
	}
	if ok, errs := p.IsValid(); !ok {
		return "", errs[0]
	}
	return p, nil
}

// Error implements the error interface for InvalidMatchPolicyError.
func (e *InvalidMatchPolicyError) Error() string {
	return fmt.Sprintf("invalid match policy %q (valid: substring, subsequence)", e.Value)
}

// Unwrap returns ErrInvalidMatchPolicy for errors.Is() compatibility.
func (e *InvalidMatchPolicyError) Unwrap() error { return ErrInvalidMatchPolicy }

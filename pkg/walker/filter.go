package walker

import (
	"regexp"

	"github.com/gobwas/glob"

	"github.com/arthur-debert/slinky/pkg/errors"
	"github.com/arthur-debert/slinky/pkg/types"
)

// FilterSpec is the caller-facing, uncompiled form of a Filter.
type FilterSpec struct {
	OnlyDangling bool
	OnlyAttached bool
	OnlyAbsolute bool
	OnlyRelative bool

	// OriginPattern is matched against the origin path as yielded.
	OriginPattern string
	// TargetPattern is matched against the raw target string.
	TargetPattern string

	// Exclude holds glob patterns matched against slash-separated paths
	// relative to the walk root. Matching directories are not descended.
	Exclude []string
}

// Filter is a conjunction of predicates over a LinkEntry. The zero value
// accepts everything.
type Filter struct {
	OnlyDangling bool
	OnlyAttached bool
	OnlyAbsolute bool
	OnlyRelative bool
	Origin       *regexp.Regexp
	Target       *regexp.Regexp
	Exclude      []glob.Glob
}

// NewFilter compiles spec. Invalid patterns are setup errors and must
// abort the run before any walk begins.
func NewFilter(spec FilterSpec) (*Filter, error) {
	f := &Filter{
		OnlyDangling: spec.OnlyDangling,
		OnlyAttached: spec.OnlyAttached,
		OnlyAbsolute: spec.OnlyAbsolute,
		OnlyRelative: spec.OnlyRelative,
	}

	var err error
	if spec.OriginPattern != "" {
		if f.Origin, err = regexp.Compile(spec.OriginPattern); err != nil {
			return nil, errors.Wrapf(err, errors.ErrInvalidPattern, "invalid origin filter %q", spec.OriginPattern)
		}
	}
	if spec.TargetPattern != "" {
		if f.Target, err = regexp.Compile(spec.TargetPattern); err != nil {
			return nil, errors.Wrapf(err, errors.ErrInvalidPattern, "invalid target filter %q", spec.TargetPattern)
		}
	}
	for _, pattern := range spec.Exclude {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrInvalidPattern, "invalid exclude pattern %q", pattern)
		}
		f.Exclude = append(f.Exclude, g)
	}

	return f, nil
}

// Match reports whether entry passes every active predicate. Status flags
// are checked before the regular expressions.
func (f *Filter) Match(entry *types.LinkEntry) bool {
	if f == nil {
		return true
	}
	if f.OnlyDangling && !entry.IsDangling {
		return false
	}
	if f.OnlyAttached && entry.IsDangling {
		return false
	}
	if f.OnlyAbsolute && !entry.IsAbsolute {
		return false
	}
	if f.OnlyRelative && entry.IsAbsolute {
		return false
	}
	if !f.MatchOrigin(entry.Origin) {
		return false
	}
	if f.Target != nil && !f.Target.MatchString(entry.RawTarget) {
		return false
	}
	return true
}

// MatchOrigin applies only the origin pattern. It is all that can be
// checked for a link that failed classification.
func (f *Filter) MatchOrigin(origin string) bool {
	if f == nil || f.Origin == nil {
		return true
	}
	return f.Origin.MatchString(origin)
}

// Excluded reports whether the slash-separated relative path rel matches
// an exclude pattern.
func (f *Filter) Excluded(rel string) bool {
	if f == nil {
		return false
	}
	for _, g := range f.Exclude {
		if g.Match(rel) {
			return true
		}
	}
	return false
}

// Empty reports whether the filter can never match: both halves of an
// exclusive pair were requested.
func (f *Filter) Empty() bool {
	if f == nil {
		return false
	}
	return (f.OnlyDangling && f.OnlyAttached) || (f.OnlyAbsolute && f.OnlyRelative)
}

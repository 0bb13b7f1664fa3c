package types

// LinkEntry is one symbolic link discovered during a walk.
//
// IsAbsolute and IsDangling are a snapshot taken at classification time;
// the filesystem may change before the entry is acted upon.
type LinkEntry struct {
	// Origin is the path of the link itself, as yielded by the walk.
	Origin string `json:"origin"`

	// RawTarget is the literal string stored in the link.
	RawTarget string `json:"target"`

	// Dir is the directory containing Origin, used to resolve relative targets.
	Dir string `json:"-"`

	// Resolved is RawTarget joined onto Dir when RawTarget is relative.
	Resolved string `json:"resolved"`

	IsAbsolute bool `json:"absolute"`
	IsDangling bool `json:"dangling"`
}

// StatusLabel returns "dangling" or "attached".
func (e *LinkEntry) StatusLabel() string {
	if e.IsDangling {
		return "dangling"
	}
	return "attached"
}

// LinkKind selects what kind of link a mirror or create operation produces.
type LinkKind string

const (
	// LinkSymbolic produces symbolic links holding absolute targets
	LinkSymbolic LinkKind = "symbolic"

	// LinkHard produces hardlinks to the exact source file
	LinkHard LinkKind = "hard"
)

package paths

import (
	"os"
	"path/filepath"
	"strings"
)

type componentKind int

const (
	rootComponent componentKind = iota
	curDirComponent
	parentDirComponent
	normalComponent
)

// component is one lexical element of a path.
type component struct {
	kind componentKind
	name string
}

// split decomposes path into its volume name (empty on POSIX) and its
// components. Repeated and trailing separators produce no components.
func split(path string) (string, []component) {
	vol := filepath.VolumeName(path)
	rest := path[len(vol):]

	var comps []component
	if rest != "" && os.IsPathSeparator(rest[0]) {
		comps = append(comps, component{kind: rootComponent})
	}

	start := -1
	flush := func(end int) {
		if start < 0 {
			return
		}
		name := rest[start:end]
		start = -1
		switch name {
		case ".":
			comps = append(comps, component{kind: curDirComponent})
		case "..":
			comps = append(comps, component{kind: parentDirComponent})
		default:
			comps = append(comps, component{kind: normalComponent, name: name})
		}
	}
	for i := 0; i < len(rest); i++ {
		if os.IsPathSeparator(rest[i]) {
			flush(i)
			continue
		}
		if start < 0 {
			start = i
		}
	}
	flush(len(rest))

	return vol, comps
}

// join renders components back into a path string.
func join(vol string, comps []component) string {
	var b strings.Builder
	b.WriteString(vol)

	names := make([]string, 0, len(comps))
	for _, c := range comps {
		switch c.kind {
		case rootComponent:
			b.WriteByte(filepath.Separator)
		case parentDirComponent:
			names = append(names, "..")
		case normalComponent:
			names = append(names, c.name)
		}
	}
	b.WriteString(strings.Join(names, string(filepath.Separator)))

	if b.Len() == 0 {
		return "."
	}
	return b.String()
}

// Normalize lexically reduces path without touching the filesystem.
//
// "." components are dropped. A ".." cancels the preceding name; it is kept
// when there is nothing to cancel (empty accumulator or a preceding ".."),
// and dropped directly after the root, which has no parent. A path that
// reduces to nothing is returned as ".".
//
//	a/b/../c    -> a/c
//	a/../../b   -> ../b
//	/../a       -> /a
//	../../foo   -> ../../foo
func Normalize(path string) string {
	vol, comps := split(path)

	stack := make([]component, 0, len(comps))
	for _, c := range comps {
		switch c.kind {
		case rootComponent, normalComponent:
			stack = append(stack, c)
		case curDirComponent:
		case parentDirComponent:
			n := len(stack)
			if n == 0 {
				stack = append(stack, c)
				continue
			}
			switch stack[n-1].kind {
			case normalComponent:
				stack = stack[:n-1]
			case parentDirComponent:
				stack = append(stack, c)
			case rootComponent:
				// root has no parent
			}
		}
	}

	return join(vol, stack)
}

// Package walker finds symbolic links under a directory tree.
//
// A Walker traverses depth-first without following links, classifies every
// link it meets with the links package, and yields the entries that pass a
// Filter. The sequence is lazy and bounded by an optional depth limit:
//
//	f, err := walker.NewFilter(walker.FilterSpec{OnlyDangling: true})
//	if err != nil {
//		return err
//	}
//	w := walker.New(filesystem.NewOS(), walker.Options{MaxDepth: walker.Unbounded, Filter: f})
//	for entry, err := range w.Walk(root) {
//		if err != nil {
//			continue
//		}
//		fmt.Println(entry.Origin)
//	}
package walker

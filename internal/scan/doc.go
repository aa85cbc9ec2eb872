// Package scan walks a directory tree and produces the ordered file records
// the conversion pipeline consumes. Order is the traversal order of the
// underlying walk and is stable across repeated scans of an unmodified tree.
package scan

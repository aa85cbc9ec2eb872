// Package matrixcache persists converted matrices in a SQLite database so
// repeated renders of a large, unchanged tree skip image decode and table
// parse work. Entries are keyed by path plus size and modification time, so a
// touched file is simply converted again.
package matrixcache

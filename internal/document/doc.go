// Package document owns the current tree of each open document.
//
// A Document has one writer at a time; readers take a Snapshot without
// locking. Snapshots are immutable.
package document

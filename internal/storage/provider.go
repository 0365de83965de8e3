// Package storage defines the file-system abstraction for the vault and the
// artifact output directory.
package storage

// WalkFunc is called with the root-relative path of each matching file.
type WalkFunc func(rel string) error

// Provider is the interface for vault and output file operations.
type Provider interface {
	// Root returns the absolute directory the provider is rooted at.
	Root() string
	// Walk calls fn in lexical order for every file under dir whose name ends with suffix.
	Walk(dir, suffix string, fn WalkFunc) error
	// Read returns the raw bytes of the file at path (relative to root).
	Read(path string) ([]byte, error)
	// Write atomically writes content to path (relative to root).
	Write(path string, content []byte) error
}

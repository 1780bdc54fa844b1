// Package ports defines the interfaces adapters implement. The app layer
// depends only on these, never on concrete adapters.
package ports

// Watcher monitors directories for file changes. The adapter filters out
// editor and VCS noise (.git, swap files, etc.) before invoking onChange.
// Only one Watch call should be active at a time.
type Watcher interface {
	// Watch starts monitoring each root recursively. onChange is called with
	// the absolute path of each changed file, from any goroutine. Returns an
	// error if a root doesn't exist or can't be watched.
	Watch(roots []string, onChange func(filePath string)) error

	// Stop ends monitoring and releases all resources. After Stop returns,
	// no further onChange calls will fire. Safe to call multiple times.
	Stop() error
}

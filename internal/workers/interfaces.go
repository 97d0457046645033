// Package workers provides abstractions for managing and running
// background workers in the application.
// It defines the Worker interface and a Workers aggregate that allows
// running and stopping multiple workers in a unified way.
package workers

// Worker is the interface that must be implemented by any background worker.
//
// Run starts the worker and returns immediately; the worker's processing
// happens in goroutines it spawns internally. Stop asks the worker to finish
// and blocks until its goroutines have drained.
type Worker interface {
	Run()
	Stop()
}

package core

// Logger receives render status and progress lines. Implementations must be
// safe for use from the goroutine that drives a render.
type Logger interface {
	Printf(format string, args ...interface{})
}

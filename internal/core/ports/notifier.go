package ports

// Notifier is the sink for user-visible notifications. Calls are
// fire-and-forget; no return value is consumed.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

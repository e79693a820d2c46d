package ports

// Intake feeds email content into the pipeline from an outside source:
// snapshot posts from the browser collaborator, forwarded emails over
// SMTP, or a one-shot CLI invocation.
type Intake interface {
	// Start starts serving the intake
	Start() error

	// Stop stops the intake
	Stop() error
}

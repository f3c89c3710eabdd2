// Package pipeline holds the mediator behaviors wrapped around every command
// and query handler, plus the validator registry the validation behavior
// consults. Behaviors are registered once at startup in a fixed order:
// validation first, then performance logging.
package pipeline

// Unit is the response type for commands that return nothing.
type Unit struct{}

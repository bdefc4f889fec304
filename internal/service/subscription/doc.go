// Package subscription implements the subscriber intake and double opt-in
// confirmation workflows.
//
// Create validates raw input into domain value objects, persists a pending
// subscriber, issues a confirmation token, and sends the confirmation email.
// Confirm resolves a token back to its subscriber and flips the status to
// confirmed.
//
// The service depends only on the narrow store and transport interfaces in
// repository.go. It never imports net/http or database/sql directly.
package subscription

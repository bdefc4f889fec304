// Package newsletter implements the broadcast workflow: delivering one
// newsletter issue to every confirmed subscriber.
//
// Recipients are dispatched individually with independent failure
// accumulation, so a single rejected address does not stop the rest of the
// fan-out. The package also builds issues from RSS/Atom feeds.
package newsletter

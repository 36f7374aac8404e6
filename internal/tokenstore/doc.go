// Package tokenstore persists OAuth2 tokens on local disk.
//
// Each token lives in its own JSON file named after the program and a stable
// key derived from the requested scope set:
//
//	<dir>/<program>-token-<scopekey>.json
//
// Reads of a missing file report "absent" rather than an error. Writes stage
// the encoded token in a temporary file in the same directory and rename it
// over the target, so a failed write never leaves a truncated or partially
// overwritten token behind.
//
// Example usage:
//
//	store := tokenstore.New(dir, "nextmeet")
//	key := tokenstore.ScopeKey([]string{calendar.CalendarReadonlyScope})
//	tok, err := store.Get(key)
//	if err != nil {
//	    return err
//	}
//	if tok == nil {
//	    // no token yet
//	}
package tokenstore

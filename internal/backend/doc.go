// Package backend binds one Google grant to the Docs and Drive clients.
//
// An Adapter is created per request by the session binder. Before each call
// it refreshes the grant when it is within google.ExpiryThreshold of expiry,
// builds the API services on first use and records a span and metrics for
// the Google API call. Refreshed grants are handed to an optional hook so a
// durable session store can persist them.
package backend

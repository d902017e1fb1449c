// Package google holds the OAuth side of the Google integration: the
// credential Grant held per session, the OAuth client used for the
// authorization code exchange and token refresh, and the scope set.
package google

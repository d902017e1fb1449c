// Package session maps opaque session identifiers to Google credential
// grants.
//
// A session is created when the OAuth callback succeeds and lives until the
// process stops (MemoryStore) or indefinitely (ValkeyStore). The store never
// expires records itself; token expiry is handled by the backend adapter,
// which refreshes the grant in place.
package session

// Package common contains shared constants and sentinel errors used across
// portalcli components.
package common

import "time"

// AuthHeaderName is the HTTP header carrying the bearer token on
// outbound requests.
const AuthHeaderName = "Authorization"

// ClientIDHeaderName carries the persistent install identifier so the
// server can correlate sessions belonging to one device.
const ClientIDHeaderName = "X-Client-Id"

// MinTokenLength is the shortest stored token the client treats as
// present. Anything shorter is assumed to be a corrupted partial write.
const MinTokenLength = 10

// ActionMinInterval is the minimum spacing between dispatched admin
// actions. A client-side double-submit guard, not a security control.
const ActionMinInterval = time.Second

// MaxNoticeLength caps user-facing notices derived from server errors.
const MaxNoticeLength = 120

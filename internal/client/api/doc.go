// Package api implements the client for the remote Portal HTTP API.
//
// Each endpoint has exactly one canonical response shape, decoded by a
// dedicated parse function that fails loudly (ParseError) on anything
// else. Transport and status failures are mapped to sentinel errors so
// callers can distinguish rejection (ErrUnauthorized) from transient
// unavailability (ErrUnavailable) with errors.Is.
package api

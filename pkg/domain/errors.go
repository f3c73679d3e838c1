package domain

import "errors"

// ErrUnknownOperation is returned when an invocation names an operation that is not in the catalog.
var ErrUnknownOperation = errors.New("unknown operation")

// ErrInvalidArgument is returned when an argument violates the declared schema.
var ErrInvalidArgument = errors.New("invalid argument")

// ErrRemoteUnavailable is returned by the remote stage for any failure: transport error,
// timeout, non-200 status or a body that is not a JSON object.
// Handlers never surface it; it selects the fallback stage.
var ErrRemoteUnavailable = errors.New("remote unavailable")

// ErrNoMatch is returned by curated lookups that found nothing.
var ErrNoMatch = errors.New("no curated match")

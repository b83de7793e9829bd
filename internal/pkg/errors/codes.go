package errors

import "net/http"

const (
	CodeInvalidRequest      = "INVALID_REQUEST"
	CodeQueryTooShort       = "QUERY_TOO_SHORT"
	CodeSessionNotFound     = "SESSION_NOT_FOUND"
	CodeCandidateNotFound   = "CANDIDATE_NOT_FOUND"
	CodeListClosed          = "LIST_CLOSED"
	CodeGeocoderUnavailable = "GEOCODER_UNAVAILABLE"
	CodeMalformedResponse   = "MALFORMED_RESPONSE"
	CodeInternalServer      = "INTERNAL_SERVER_ERROR"
)

var (
	ErrInvalidRequest = New(
		CodeInvalidRequest,
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrQueryTooShort = New(
		CodeQueryTooShort,
		"Query is too short to search",
		http.StatusOK,
	)

	ErrSessionNotFound = New(
		CodeSessionNotFound,
		"Search session not found",
		http.StatusNotFound,
	)

	ErrCandidateNotFound = New(
		CodeCandidateNotFound,
		"Candidate is not part of the current results",
		http.StatusNotFound,
	)

	ErrListClosed = New(
		CodeListClosed,
		"Result list is closed, open it first",
		http.StatusConflict,
	)

	ErrGeocoderUnavailable = New(
		CodeGeocoderUnavailable,
		"Geocoding service is unavailable",
		http.StatusBadGateway,
	)

	ErrMalformedResponse = New(
		CodeMalformedResponse,
		"Geocoding service returned a malformed response",
		http.StatusBadGateway,
	)

	ErrInternalServer = New(
		CodeInternalServer,
		"Internal server error",
		http.StatusInternalServerError,
	)
)

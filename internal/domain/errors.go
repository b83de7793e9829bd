package domain

import "errors"

var (
	// ErrUpstreamStatus - геокодер ответил не 2xx
	ErrUpstreamStatus = errors.New("geocoder returned non-2xx status")
	// ErrMalformedPayload - тело ответа не массив кандидатов или кандидат не прошел схему
	ErrMalformedPayload = errors.New("geocoder returned malformed payload")
)

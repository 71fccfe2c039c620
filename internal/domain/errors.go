package domain

import "errors"

var (
	// ErrProductNotFound is returned when a barcode is unknown to the product database
	ErrProductNotFound = errors.New("product not found in database")

	// ErrProfileNotFound is returned when no profile row exists for a user
	ErrProfileNotFound = errors.New("profile not found")

	// ErrRateLimited is returned when rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrProductAPIFailure is returned when the product database request fails
	ErrProductAPIFailure = errors.New("product API request failed")

	// ErrAnalyzerFailure is returned when the remote analysis service fails
	ErrAnalyzerFailure = errors.New("analysis service request failed")

	// ErrOCRFailure is returned when text extraction from an image fails
	ErrOCRFailure = errors.New("OCR request failed")

	// ErrLLMFailure is returned when the LLM endpoint fails or returns no response
	ErrLLMFailure = errors.New("LLM request failed")
)

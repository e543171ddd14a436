package domain

import "errors"

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput signals a rejected request input (blank text, bad id).
	ErrInvalidInput = errors.New("invalid input")
	// ErrVectorDimMismatch signals a vector whose length differs from the index dimension.
	ErrVectorDimMismatch = errors.New("vector dimension mismatch")
	// ErrNotReady signals a backend that has not finished initializing.
	ErrNotReady = errors.New("backend not ready")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrAnswerProviderError signals a language-model provider failure.
	ErrAnswerProviderError = errors.New("answer provider error")
)

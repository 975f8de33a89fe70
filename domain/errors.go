package domain

import "errors"

var (
	// ErrSchemaMismatch reports a disagreement between an input row and the
	// feature order the scaler artifact was fitted against.
	ErrSchemaMismatch = errors.New("feature schema mismatch")

	// ErrEpisodeTerminated reports a Step call on an exhausted episode.
	ErrEpisodeTerminated = errors.New("episode already terminated")

	// ErrArtifactLoad reports a missing or corrupt scaler/policy artifact.
	// Fatal at startup, never recoverable per request.
	ErrArtifactLoad = errors.New("artifact load failed")
)

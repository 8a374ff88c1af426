package analyzer

import "errors"

// ErrNoAnalyzer indicates that no analyzer service was provided.
var ErrNoAnalyzer = errors.New("analyzer service is required")

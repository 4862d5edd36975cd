package insight

import "errors"

var (
	// ErrNoObservations means a distribution had no non-missing values.
	ErrNoObservations = errors.New("no observations")
	// ErrTooFewValues means fewer than three values survived numeric coercion.
	ErrTooFewValues = errors.New("too few numeric values")
	// ErrDegenerate means the statistic is undefined for the data (e.g. constant input).
	ErrDegenerate = errors.New("degenerate distribution")
	// ErrInsufficientData means a contingency table holds at most one observation.
	ErrInsufficientData = errors.New("insufficient data")
	// ErrNotComputable means the bias-corrected table has no usable degrees of freedom.
	ErrNotComputable = errors.New("association not computable")
	// ErrColumnAbsent means a requested column is not in the table and its analyzer was skipped.
	ErrColumnAbsent = errors.New("column not in table")
)

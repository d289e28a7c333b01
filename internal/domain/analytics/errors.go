package analytics

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownMetric    = errors.New("unrecognized metric")
	ErrInvalidParams    = errors.New("invalid parameters")
	ErrStoreUnavailable = errors.New("record store unavailable")
)

// MetricError lleva el nombre de la métrica que falló.
type MetricError struct {
	Metric string
	Err    error
}

func (e *MetricError) Error() string {
	return fmt.Sprintf("metric %q: %v", e.Metric, e.Err)
}

func (e *MetricError) Unwrap() error {
	return e.Err
}

// PublicMessage es el texto que se expone al cliente. Los fallos del
// almacén se reportan con un mensaje genérico.
func (e *MetricError) PublicMessage() string {
	switch {
	case errors.Is(e.Err, ErrUnknownMetric):
		return "unrecognized metric type"
	case errors.Is(e.Err, ErrInvalidParams):
		return e.Err.Error()
	default:
		return "internal error computing metric"
	}
}

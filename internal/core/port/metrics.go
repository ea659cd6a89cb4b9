package port

import "github.com/remtori/image-resize/internal/core/domain"

type MetricsRecorder interface {
	RecordRequest(result domain.Result, outcome domain.Outcome)
}

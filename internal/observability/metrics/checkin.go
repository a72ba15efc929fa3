package metrics

import (
	"time"

	"github.com/Safenein/moodle-painkillers/internal/domain/checkin"
	apperrors "github.com/Safenein/moodle-painkillers/internal/errors"
	"github.com/Safenein/moodle-painkillers/internal/observability/statsd"
)

// Result constants for metric tagging.
const (
	ResultSuccess = "success"
	ResultError   = "error"
)

// CheckInMetric captures details about one completed check-in run for metric emission.
type CheckInMetric struct {
	Outcome  checkin.Outcome
	Duration time.Duration
	Err      error
}

// EmitCheckIn emits standardised check-in run metrics: an attempt counter
// tagged with outcome and error class, and the run duration.
func EmitCheckIn(sink statsd.Sink, in CheckInMetric) {
	if sink == nil {
		return
	}

	result := ResultSuccess
	if in.Err != nil {
		result = ResultError
	}

	tags := map[string]string{
		"result": result,
	}
	if in.Outcome != "" {
		tags["outcome"] = string(in.Outcome)
	}
	if in.Err != nil {
		if code := apperrors.GetCode(in.Err); code != "" {
			tags["error_class"] = string(code)
		}
	}

	sink.Count("checkin.attempt", 1, tags)

	if in.Duration > 0 {
		sink.Timing("checkin.duration", in.Duration, CloneTags(tags))
	}
}

// CloneTags creates a shallow copy of a tag map.
func CloneTags(src map[string]string) map[string]string {
	if len(src) == 0 {
		return nil
	}
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

package pipeline

import (
	"time"
)

func createEvent(
	eventType EventType,
	operation string,
	dialect *string,
	table *string,
	sql *string,
	output any,
	err *string,
	startTime time.Time,
) Event {
	var duration *int64
	if !startTime.IsZero() {
		d := time.Since(startTime).Milliseconds()
		duration = &d
	}

	return Event{
		Type:      eventType,
		Timestamp: time.Now().UnixMilli(),
		Operation: operation,
		Dialect:   dialect,
		Table:     table,
		SQL:       sql,
		Output:    output,
		Error:     err,
		Duration:  duration,
	}
}

// Package audit defines the audit events exchanged over the message broker.
package audit

import "time"

// QueueName is the durable queue every audited action flows through.
const QueueName = "audit.events"

// Event is one audited action: who did what, when.  It contains enough
// information for downstream consumers to log or persist without querying
// any other system.  Detail is optional free-form context (e.g. row counts,
// watermark tokens).
type Event struct {
    OccurredAt string `json:"occurred_at"`
    Actor      string `json:"actor"`
    Action     string `json:"action"`
    Detail     string `json:"detail,omitempty"`
}

// NewEvent stamps an event with the current UTC time.
func NewEvent(actor, action, detail string) Event {
    return Event{
        OccurredAt: time.Now().UTC().Format(time.RFC3339Nano),
        Actor:      actor,
        Action:     action,
        Detail:     detail,
    }
}

// Time parses the event timestamp, falling back to now for malformed input
// so a bad producer cannot wedge the consumer.
func (e Event) Time() time.Time {
    t, err := time.Parse(time.RFC3339Nano, e.OccurredAt)
    if err != nil {
        return time.Now().UTC()
    }
    return t
}

package activity

import "time"

// Entry is an append-only administrative audit note. Entries are written on
// member and payment mutations and read back only for display.
type Entry struct {
	ID          string    `json:"id" bson:"_id"`
	Action      string    `json:"action" bson:"action"`
	PerformedBy string    `json:"performedBy" bson:"performedBy"`
	Timestamp   time.Time `json:"timestamp" bson:"timestamp"`
}

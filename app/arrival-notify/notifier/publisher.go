package notifier

import (
	"encoding/json"
	"fmt"
	"github.com/OpenTransitTools/arrivalnotify/business/data/arrivals"
)

// SnapshotDestination is where collected arrivals are sent after each successful lookup.
type SnapshotDestination interface {
	Publish(query arrivals.Query, snapshot *arrivals.Snapshot) error
}

// messagePublisher is the part of a nats.Conn used to publish snapshots
type messagePublisher interface {
	Publish(subject string, data []byte) error
}

// publishedSnapshot is the json message sent for a snapshot
type publishedSnapshot struct {
	LineNumber int `json:"line_number"`
	StopNumber int `json:"stop_number"`
	arrivals.Snapshot
}

// NatsSnapshotDestination sends snapshots over nats as json
type NatsSnapshotDestination struct {
	natsConn messagePublisher
	subject  string
}

// NewNatsSnapshotDestination creates NatsSnapshotDestination publishing on subject
func NewNatsSnapshotDestination(natsConn messagePublisher, subject string) *NatsSnapshotDestination {
	return &NatsSnapshotDestination{
		natsConn: natsConn,
		subject:  subject,
	}
}

func (n *NatsSnapshotDestination) Publish(query arrivals.Query, snapshot *arrivals.Snapshot) error {
	jsonData, err := json.Marshal(publishedSnapshot{
		LineNumber: query.LineNumber,
		StopNumber: query.StopNumber,
		Snapshot:   *snapshot,
	})
	if err != nil {
		return fmt.Errorf("error marshaling snapshot to json: %w", err)
	}
	return n.natsConn.Publish(n.subject, jsonData)
}

package arrivals

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// TimestampLayout is the layout of timestamp_calculated in arrivals API responses
const TimestampLayout = "2006-01-02 15:04:05"

//arrivalsResponse is the body returned by the arrivals API for a stop and line.
//Pointer fields are nil when absent from the body.
type arrivalsResponse struct {
	Name                *string        `json:"name" validate:"required"`
	TimestampCalculated *string        `json:"timestamp_calculated" validate:"required"`
	Lines               []responseLine `json:"lines"`
}

type responseLine struct {
	Arrivals []responseArrival `json:"arrivals" validate:"required,dive"`
}

type responseArrival struct {
	Time *string `json:"time" validate:"required"`
}

// DecodeSnapshot builds a Snapshot from an arrivals API response body.
// Returns nil without error when the body is empty, null, an empty object or an empty array, which is what the API
// answers while the line is not operating.
// When the response lists no lines the Snapshot has no arrival times but still carries the stop name and
// collection time. Only the arrivals of the first listed line are used.
func DecodeSnapshot(body []byte) (*Snapshot, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, nil
	}
	var decoded interface{}
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, &ParseError{Err: err}
	}
	switch value := decoded.(type) {
	case nil:
		return nil, nil
	case []interface{}:
		if len(value) == 0 {
			return nil, nil
		}
		return nil, &ParseError{Err: fmt.Errorf("expected object, found array of %d elements", len(value))}
	case map[string]interface{}:
		if len(value) == 0 {
			return nil, nil
		}
	default:
		return nil, &ParseError{Err: fmt.Errorf("expected object, found %T", value)}
	}

	var response arrivalsResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, &ParseError{Err: err}
	}
	if err := validate.Struct(response); err != nil {
		return nil, &ParseError{Err: err}
	}
	collectedAt, err := time.Parse(TimestampLayout, *response.TimestampCalculated)
	if err != nil {
		return nil, &ParseError{Err: fmt.Errorf("timestamp_calculated: %w", err)}
	}

	snapshot := &Snapshot{
		StopName:     *response.Name,
		CollectedAt:  &collectedAt,
		ArrivalTimes: []string{},
	}
	if len(response.Lines) == 0 {
		return snapshot, nil
	}

	firstLine := response.Lines[0]
	if err := validate.Struct(firstLine); err != nil {
		return nil, &ParseError{Err: fmt.Errorf("lines[0]: %w", err)}
	}
	for _, arrival := range firstLine.Arrivals {
		snapshot.ArrivalTimes = append(snapshot.ArrivalTimes, *arrival.Time)
	}
	return snapshot, nil
}

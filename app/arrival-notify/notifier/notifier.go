// Package notifier looks up the next arrivals of a bus line at a stop and sends them as a text message.
package notifier

import (
	"context"
	"fmt"
	"github.com/OpenTransitTools/arrivalnotify/business/data/arrivals"
	"github.com/OpenTransitTools/arrivalnotify/foundation/sms"
	logger "log"
	"net/http"
	"unicode/utf8"
)

const (
	arrivalsURLFormat = "%s/api/v1/arrivals/%d/?line=%d&type=bus"
	refererURLFormat  = "%s/bg/transport/virtual-tables-by-line?type=bus&line=%d&route=1&stop=%d"
	userAgent         = "Mozilla/5.0 (Windows NT 6.1; Win64; x64; rv:64.0) Gecko/20100101 Firefox/64.0"
)

// Endpoints locates the arrivals API and the web site requests are expected to originate from
type Endpoints struct {
	APIHost string
	WebHost string
}

// ArrivalsSource retrieves the body found at url
type ArrivalsSource interface {
	Get(ctx context.Context, url string, headers http.Header) ([]byte, error)
}

// ArrivalsClient holds the latest arrivals for a single line and stop
type ArrivalsClient struct {
	log         *logger.Logger
	source      ArrivalsSource
	endpoints   Endpoints
	query       arrivals.Query
	destination SnapshotDestination
	snapshot    arrivals.Snapshot
}

// NewArrivalsClient creates ArrivalsClient with no arrivals collected yet.
// destination may be nil, otherwise every snapshot collected is published to it
func NewArrivalsClient(log *logger.Logger,
	source ArrivalsSource,
	endpoints Endpoints,
	query arrivals.Query,
	destination SnapshotDestination) *ArrivalsClient {
	return &ArrivalsClient{
		log:         log,
		source:      source,
		endpoints:   endpoints,
		query:       query,
		destination: destination,
	}
}

// Query returns the line and stop the client collects arrivals for
func (c *ArrivalsClient) Query() arrivals.Query {
	return c.query
}

// Snapshot returns a copy of the latest collected arrivals
func (c *ArrivalsClient) Snapshot() arrivals.Snapshot {
	result := c.snapshot
	result.ArrivalTimes = c.snapshot.Arrivals(len(c.snapshot.ArrivalTimes))
	return result
}

func (c *ArrivalsClient) arrivalsURL() string {
	return fmt.Sprintf(arrivalsURLFormat, c.endpoints.APIHost, c.query.StopNumber, c.query.LineNumber)
}

func (c *ArrivalsClient) headers() http.Header {
	headers := http.Header{}
	headers.Set("Accept", "application/json, text/plain, */*")
	headers.Set("Accept-Language", "en-US,en;q=0.5")
	headers.Set("Origin", c.endpoints.WebHost)
	headers.Set("Referer", fmt.Sprintf(refererURLFormat, c.endpoints.WebHost, c.query.LineNumber,
		c.query.StopNumber))
	headers.Set("User-Agent", userAgent)
	return headers
}

// FetchArrivals retrieves the next arrivals from the arrivals API and replaces the current snapshot.
// If the API reports nothing for the line, which happens outside of its operating hours, the snapshot is left as is.
// Returns arrivals.TransportError if the API could not be retrieved and arrivals.ParseError
// if the response could not be understood.
func (c *ArrivalsClient) FetchArrivals(ctx context.Context) error {
	url := c.arrivalsURL()
	body, err := c.source.Get(ctx, url, c.headers())
	if err != nil {
		return &arrivals.TransportError{URL: url, Err: err}
	}
	snapshot, err := arrivals.DecodeSnapshot(body)
	if err != nil {
		return err
	}
	if snapshot == nil {
		c.log.Printf("no arrivals reported for %s, line is not operating", c.query)
		return nil
	}
	c.snapshot = *snapshot
	c.log.Printf("collected %d arrivals for %s at %q", len(snapshot.ArrivalTimes), c.query, snapshot.StopName)

	if c.destination != nil {
		if err := c.destination.Publish(c.query, snapshot); err != nil {
			c.log.Printf("failed to publish arrivals for %s, error:%v", c.query, err)
		}
	}
	return nil
}

// Arrivals returns up to cutoff of the latest collected arrival times
func (c *ArrivalsClient) Arrivals(cutoff int) []string {
	return c.snapshot.Arrivals(cutoff)
}

// Summary describes the next arrivals in a form short enough for a text message
func (c *ArrivalsClient) Summary() string {
	return c.snapshot.Summary(c.query)
}

// String implements Stringer interface for ArrivalsClient
func (c *ArrivalsClient) String() string {
	return c.Summary()
}

// SendNotification sends Summary from "from" to destination using sender.
// Nothing is sent, and nil returned, when enabled is false, when the summary does not fit a single
// text message or when no arrival times have been collected.
// On success returns the message identifier assigned by sender, failures are returned as arrivals.NotificationError
func (c *ArrivalsClient) SendNotification(sender sms.Sender,
	from string,
	destination string,
	enabled bool) (*string, error) {
	if !enabled {
		return nil, nil
	}
	summary := c.Summary()
	if utf8.RuneCountInString(summary) > sms.MaxMessageLength {
		c.log.Printf("summary for %s is %d characters, longer than %d, not sending",
			c.query, utf8.RuneCountInString(summary), sms.MaxMessageLength)
		return nil, nil
	}
	if len(c.snapshot.ArrivalTimes) == 0 {
		c.log.Printf("no arrivals collected for %s, not sending", c.query)
		return nil, nil
	}
	messageID, err := sender.Send(summary, from, destination)
	if err != nil {
		return nil, &arrivals.NotificationError{Destination: destination, Err: err}
	}
	c.log.Printf("sent arrivals for %s to %s, message %s", c.query, destination, messageID)
	return &messageID, nil
}

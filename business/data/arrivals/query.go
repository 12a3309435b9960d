// Package arrivals contains the data describing upcoming bus arrivals at a stop
// and the rules for decoding and presenting them.
package arrivals

import (
	"fmt"
	"github.com/go-playground/validator/v10"
	"strconv"
)

var validate = validator.New()

// Query identifies the bus line and stop arrivals are requested for.
type Query struct {
	LineNumber int `validate:"gt=0"`
	StopNumber int `validate:"gt=0"`
}

// MakeQuery builds a Query, both numbers must be positive
func MakeQuery(lineNumber int, stopNumber int) (Query, error) {
	query := Query{LineNumber: lineNumber, StopNumber: stopNumber}
	if err := validate.Struct(query); err != nil {
		if lineNumber <= 0 {
			return Query{}, &ArgumentError{Argument: "line number", Value: strconv.Itoa(lineNumber), Err: err}
		}
		return Query{}, &ArgumentError{Argument: "stop number", Value: strconv.Itoa(stopNumber), Err: err}
	}
	return query, nil
}

// ParseQuery builds a Query from the textual line and stop numbers given on the command line
func ParseQuery(lineNumber string, stopNumber string) (Query, error) {
	line, err := strconv.Atoi(lineNumber)
	if err != nil {
		return Query{}, &ArgumentError{Argument: "line number", Value: lineNumber, Err: err}
	}
	stop, err := strconv.Atoi(stopNumber)
	if err != nil {
		return Query{}, &ArgumentError{Argument: "stop number", Value: stopNumber, Err: err}
	}
	return MakeQuery(line, stop)
}

// String implements Stringer interface for Query
func (q Query) String() string {
	return fmt.Sprintf("bus %d @ %d", q.LineNumber, q.StopNumber)
}

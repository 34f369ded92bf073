package domain

import "fmt"

// SimControlRequest

type SimControlRequest interface {
	ActorRequest
	SimControlCommand() string
}

type SimControlRequestMixIn struct {
	ActorRequestMixIn
}

func (r SimControlRequestMixIn) SimControlCommand() string {
	return fmt.Sprintf("%T", r)
}

// SimControlResponse

type SimControlResponse interface {
	ActorResponse
	SimControlResponse() string
}

type SimControlResponseMixIn struct {
	ActorResponse
}

func (r SimControlResponseMixIn) SimControlResponse() string {
	return fmt.Sprintf("%T", r)
}

// Validated setter commands. Each response carries the value that was
// actually committed, which on rejection is the previous one.

type SetTargetVoltageRequest struct {
	SimControlRequestMixIn
	RequestedV float64
}

type SetTargetVoltageResponse struct {
	SimControlResponseMixIn
	CommittedV float64
}

type SetEclipseRequest struct {
	SimControlRequestMixIn
	Payload string
}

type SetEclipseResponse struct {
	SimControlResponseMixIn
	Committed int
	State     string
	Accepted  bool
}

// ensure interface compliance
var _ SimControlRequest = (*SetTargetVoltageRequest)(nil)
var _ SimControlRequest = (*SetEclipseRequest)(nil)

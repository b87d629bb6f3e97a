package summarizer

import (
	"errors"
	"fmt"
	"net"
)

// ProbeKind classifies a failed liveness probe.
type ProbeKind int

const (
	ProbeOther ProbeKind = iota
	ProbeUnreachable
	ProbeTimeout
)

func (k ProbeKind) String() string {
	switch k {
	case ProbeUnreachable:
		return "unreachable"
	case ProbeTimeout:
		return "timeout"
	default:
		return "error"
	}
}

// ProbeError is returned by New when the inference server does not answer
// the liveness probe.
type ProbeError struct {
	Kind ProbeKind
	URL  string
	Err  error
}

func (e *ProbeError) Error() string {
	switch e.Kind {
	case ProbeUnreachable:
		return fmt.Sprintf("could not connect to language model server at %s, is it running? (run 'ollama serve'): %v", e.URL, e.Err)
	case ProbeTimeout:
		return fmt.Sprintf("timeout connecting to language model server at %s: %v", e.URL, e.Err)
	default:
		return fmt.Sprintf("unexpected error while pinging language model server at %s: %v", e.URL, e.Err)
	}
}

func (e *ProbeError) Unwrap() error {
	return e.Err
}

// isConnectError reports whether err is a failure to establish a connection.
func isConnectError(err error) bool {
	var opErr *net.OpError
	return errors.As(err, &opErr) && opErr.Op == "dial"
}

// isTimeout reports whether err is a network or deadline timeout.
func isTimeout(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func classifyProbe(err error) ProbeKind {
	switch {
	case isTimeout(err):
		return ProbeTimeout
	case isConnectError(err):
		return ProbeUnreachable
	default:
		return ProbeOther
	}
}

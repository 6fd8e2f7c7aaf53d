package iogbif

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"runtime"

	"github.com/gnames/faunamap/pkg/errcode"
	"github.com/gnames/gn"
)

// StatusError is returned when the service answers with a status other
// than 200.
type StatusError struct {
	Code int
	URL  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d from %s", e.Code, e.URL)
}

// isOverload checks for HTTP 503 Service Unavailable.
func isOverload(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == http.StatusServiceUnavailable
}

func isTimeout(err error) bool {
	if errors.Is(err, errTimeout) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

var errTimeout = errors.New("request timed out")

func RequestError(path string, err error) error {
	msg := "Request to <em>%s</em> failed"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.RemoteRequestError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: request to %s failed: %w",
			fn, path, err),
	}
}

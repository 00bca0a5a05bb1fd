package pool

import (
	"context"
	"errors"
	"net"
	"strings"

	"github.com/flext/flext-db-oracle/internal/dberr"
)

// ORA error codes that map onto specific kinds. Anything else falls
// through to the caller-supplied default.
var (
	authCodes = []string{
		"ORA-01017", // invalid username/password
		"ORA-28000", // account locked
		"ORA-28001", // password expired
		"ORA-01031", // insufficient privileges
	}
	connectCodes = []string{
		"ORA-12154", // could not resolve connect identifier
		"ORA-12514", // listener does not know of service
		"ORA-12505", // listener does not know of SID
		"ORA-12541", // no listener
		"ORA-12543", // destination host unreachable
		"ORA-03113", // end-of-file on communication channel
		"ORA-03114", // not connected
	}
	timeoutCodes = []string{
		"ORA-12170", // connect timeout
		"ORA-01013", // user requested cancel (statement timeout)
	}
)

// classify wraps a driver error in the dberr kind its symptoms imply.
// Already-classified errors pass through unchanged.
func classify(err error, msg string) error {
	var known *dberr.Error
	if errors.As(err, &known) {
		return err
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return dberr.Timeout(msg, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return dberr.Timeout(msg, err)
		}
		return dberr.Connection(msg, err)
	}

	text := err.Error()
	for _, code := range timeoutCodes {
		if strings.Contains(text, code) {
			return dberr.Timeout(msg, err)
		}
	}
	for _, code := range authCodes {
		if strings.Contains(text, code) {
			return dberr.Authentication(msg, err)
		}
	}
	for _, code := range connectCodes {
		if strings.Contains(text, code) {
			return dberr.Connection(msg, err)
		}
	}

	return dberr.Query(msg, err)
}

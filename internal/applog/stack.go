package applog

import (
	"fmt"
	"strings"

	pkgerrors "github.com/pkg/errors"

	"github.com/wallyouneed/wallyouneed/internal/errors"
)

type stackTracer interface {
	StackTrace() pkgerrors.StackTrace
}

// stackFor returns the stack carried by err when it has one, otherwise the
// stack of the caller skip frames above stackFor.
func stackFor(err error, skip int) string {
	var st stackTracer
	if err != nil && errors.As(err, &st) {
		return formatStack(st.StackTrace())
	}

	// pkgerrors.New records from its caller, which is this function
	trace := pkgerrors.New("").(stackTracer).StackTrace()
	if skip+1 < len(trace) {
		trace = trace[skip+1:]
	}
	return formatStack(trace)
}

func formatStack(trace pkgerrors.StackTrace) string {
	return strings.TrimPrefix(fmt.Sprintf("%+v", trace), "\n")
}

// errorType names the dynamic type of err, e.g. *fs.PathError
func errorType(err error) string {
	return fmt.Sprintf("%T", err)
}

package cmd

import (
	"errors"
	"fmt"
	"log"
	"os"

	processstatus "github.com/dydra/dydra/pkg/process/status"
	resourcestatus "github.com/dydra/dydra/pkg/resource/status"
	rpcstatus "github.com/dydra/dydra/pkg/rpc/status"
)

// Exit codes, so scripts can tell failures apart
const (
	exitFailure        = 1
	exitInvalidSpec    = 2
	exitUnknown        = 3
	exitAuthentication = 4
	exitProcessFailed  = 5
	exitTimeout        = 6
)

var (
	// globals used to patch over calls to os.Exit() during test

	logFatalln = log.Fatalln
	logFatalf  = log.Fatalf
	osExit     = os.Exit

	// logStdErr reports an error before exiting with a specific code
	logStdErr = func(format string, args ...interface{}) {
		_, _ = fmt.Fprintf(os.Stderr, format, args...)
	}

	// infoLogger wraps informative messages to os.Stderr without cluttering command output.
	infoLogger = log.New(os.Stderr, "", 0)

	// logStdOut prints command output. Tests patch it to capture output.
	logStdOut = fmt.Printf
)

// exitCode maps an error to the exit code of the command
func exitCode(err error) int {
	switch {
	case errors.Is(err, resourcestatus.ErrInvalidSpec), errors.Is(err, resourcestatus.ErrInvalidRepositorySpec):
		return exitInvalidSpec
	case errors.Is(err, resourcestatus.ErrUnknownAccount), errors.Is(err, resourcestatus.ErrUnknownRepository):
		return exitUnknown
	case errors.Is(err, rpcstatus.ErrAuthenticationRequired):
		return exitAuthentication
	case errors.Is(err, processstatus.ErrProcessFailed):
		return exitProcessFailed
	case errors.Is(err, processstatus.ErrTimeout):
		return exitTimeout
	default:
		return exitFailure
	}
}

// wrapFatalln exits with a message, and the exit code matching the kind of error
func wrapFatalln(msg string, err error) {
	if err == nil {
		logFatalln(msg)
		return
	}
	if code := exitCode(err); code != exitFailure {
		wrapFatalWithCodef(code, "%s: %v", msg, err)
		return
	}
	logFatalf("%v", fmt.Errorf(msg+": %w", err))
}

func wrapFatalWithCodef(code int, format string, args ...interface{}) {
	logStdErr(format+"\n", args...)
	osExit(code)
}

// Command library runs the lending operations of a library from the command line:
// catalog and member registration, loans, fines, the overdue sweep and the fines report.
//
// Exit codes: 0 success, 1 unexpected failure, 2 validation or usage error,
// 3 not found, 4 conflict.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()

	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	a := newApp(stdout, stderr)

	root := newRootCommand(a)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if closeErr := a.close(); closeErr != nil && err == nil {
		err = closeErr
	}

	if err != nil {
		_, _ = fmt.Fprintln(stderr, paletteFor(stderr).failure("error: "+err.Error()))
	}

	return exitCodeFor(err)
}

package main

import (
	"github.com/AntonStoeckl/library-lending-go/library/shared/shell"
	"github.com/AntonStoeckl/library-lending-go/library/shared/shell/observable"
)

// observeCommand wraps a command handler with the collectors the app was opened with.
func observeCommand[C shell.Command](a *app, handler shell.CoreCommandHandler[C]) (shell.CoreCommandHandler[C], error) {
	opts := []observable.CommandOption[C]{observable.WithCommandContextualLogging[C](a.logger)}

	if a.metrics != nil {
		opts = append(opts, observable.WithCommandMetrics[C](a.metrics))
	}

	if a.tracing != nil {
		opts = append(opts, observable.WithCommandTracing[C](a.tracing))
	}

	return observable.NewCommandWrapper(handler, opts...)
}

// observeQuery wraps a query handler with the collectors the app was opened with.
func observeQuery[Q shell.Query, R shell.QueryResult](a *app, handler shell.CoreQueryHandler[Q, R]) (shell.CoreQueryHandler[Q, R], error) {
	opts := []observable.QueryOption[Q, R]{observable.WithQueryContextualLogging[Q, R](a.logger)}

	if a.metrics != nil {
		opts = append(opts, observable.WithQueryMetrics[Q, R](a.metrics))
	}

	if a.tracing != nil {
		opts = append(opts, observable.WithQueryTracing[Q, R](a.tracing))
	}

	return observable.NewQueryWrapper(handler, opts...)
}

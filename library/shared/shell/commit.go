package shell

import (
	"context"

	"github.com/AntonStoeckl/library-lending-go/library/shared/core"
)

// CommitDecision writes the decision's changed entities together with its journal entry.
//
// An idempotent decision writes nothing. A rejected decision journals its failure event
// and then returns the business error. The returned metadata identifies the journal entry,
// so follow-up commands can name it as their cause.
func CommitDecision(
	ctx context.Context,
	committer Committer,
	commandType string,
	result core.DecisionResult,
) (EventMetadata, error) {
	if !result.HasEventToAppend() {
		return EventMetadata{}, nil
	}

	metadata := NewEventMetadata(ctx, commandType)

	changes, err := ChangeSetFrom(result, metadata)
	if err != nil {
		return EventMetadata{}, err
	}

	if err = committer.Commit(ctx, changes); err != nil {
		return EventMetadata{}, err
	}

	return metadata, result.HasError()
}

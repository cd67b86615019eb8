// Package indexer implements the rebuild backends used after an entity reset.
package indexer

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Noop skips indexer rebuilds. Useful when indexers are rebuilt by cron.
type Noop struct {
	Log logrus.FieldLogger
}

func (n Noop) Reindex(ctx context.Context, id string) error {
	if n.Log != nil {
		n.Log.WithField("indexer", id).Info("indexer backend is none; skipping reindex")
	}
	return nil
}

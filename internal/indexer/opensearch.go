package indexer

import (
	"context"

	"github.com/sirupsen/logrus"
)

type documentStore interface {
	IndexExists(ctx context.Context, index string) (bool, error)
	IndexDocCount(ctx context.Context, index string) (int64, error)
	DeleteAllDocuments(ctx context.Context, index string) (int64, error)
}

// OpenSearch empties the search indices fed by an indexer. After an entity
// reset the rebuilt index holds no documents, so emptying it is a full rebuild.
type OpenSearch struct {
	client  documentStore
	indices map[string][]string
	log     logrus.FieldLogger
}

func NewOpenSearch(client documentStore, indices map[string][]string, log logrus.FieldLogger) *OpenSearch {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &OpenSearch{client: client, indices: indices, log: log}
}

func (o *OpenSearch) Reindex(ctx context.Context, id string) error {
	targets := o.indices[id]
	if len(targets) == 0 {
		o.log.WithField("indexer", id).Debug("no opensearch index mapped; skipping")
		return nil
	}
	for _, index := range targets {
		ok, err := o.client.IndexExists(ctx, index)
		if err != nil {
			return err
		}
		if !ok {
			o.log.WithFields(logrus.Fields{"indexer": id, "index": index}).Warn("opensearch index not found; skipping")
			continue
		}
		log := o.log.WithFields(logrus.Fields{"indexer": id, "index": index})
		before, err := o.client.IndexDocCount(ctx, index)
		if err != nil {
			return err
		}
		if before == 0 {
			log.Debug("opensearch index already empty")
			continue
		}
		n, err := o.client.DeleteAllDocuments(ctx, index)
		if err != nil {
			return err
		}
		log.WithFields(logrus.Fields{"documents": before, "deleted": n}).Info("opensearch index emptied")
	}
	return nil
}

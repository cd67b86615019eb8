package mysql

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExec struct {
	queries []string
	err     error
}

func (f *fakeExec) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	f.queries = append(f.queries, query)
	if f.err != nil {
		return nil, f.err
	}
	return driverResult(0), nil
}

type driverResult int64

func (r driverResult) LastInsertId() (int64, error) { return 0, nil }
func (r driverResult) RowsAffected() (int64, error) { return int64(r), nil }

func TestStore_DeleteAndReset(t *testing.T) {
	fx := &fakeExec{}
	s := NewStore(fx, "m2_")
	ctx := context.Background()

	require.NoError(t, s.Delete(ctx, "customer_entity", ""))
	require.NoError(t, s.Delete(ctx, "catalog_category_entity", "level > 1"))
	require.NoError(t, s.ResetAutoIncrement(ctx, "customer_entity"))

	assert.Equal(t, []string{
		"DELETE FROM `m2_customer_entity`",
		"DELETE FROM `m2_catalog_category_entity` WHERE level > 1",
		"ALTER TABLE `m2_customer_entity` AUTO_INCREMENT = 1",
	}, fx.queries)
}

func TestStore_RejectsInvalidTable(t *testing.T) {
	fx := &fakeExec{}
	s := NewStore(fx, "")
	err := s.Delete(context.Background(), "a`; DROP", "")
	require.Error(t, err)
	assert.Empty(t, fx.queries)
}

func TestStore_PropagatesDatabaseError(t *testing.T) {
	boom := errors.New("table doesn't exist")
	s := NewStore(&fakeExec{err: boom}, "")
	err := s.ResetAutoIncrement(context.Background(), "missing")
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "table=missing")
}

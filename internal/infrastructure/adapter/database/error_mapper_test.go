package database

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/amirhossein-jamali/peer-market/internal/domain/error"
)

func TestErrorMapper_Classify(t *testing.T) {
	m := NewErrorMapper()

	tests := []struct {
		err  error
		kind ErrorKind
	}{
		{errors.New(`ERROR: duplicate key value violates unique constraint "idx_users_username"`), KindDuplicateKey},
		{errors.New("ERROR: deadlock detected"), KindLock},
		{errors.New("dial tcp 127.0.0.1:5432: connect: connection refused"), KindConnection},
		{fmt.Errorf("query: %w", context.DeadlineExceeded), KindTimeout},
		{errors.New(`insert or update on table "items" violates foreign key constraint "fk_users_items"`), KindConstraint},
		{errors.New("something else"), KindUnknown},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.kind, m.Classify(tc.err), tc.err.Error())
	}
	assert.Equal(t, ErrorKind(""), m.Classify(nil))
}

func TestErrorMapper_IsTransient(t *testing.T) {
	m := NewErrorMapper()

	assert.True(t, m.IsTransient(errors.New("connection reset by peer")))
	assert.False(t, m.IsTransient(errors.New("duplicate key value")))
}

func TestErrorMapper_MapError(t *testing.T) {
	m := NewErrorMapper()

	assert.NoError(t, m.MapError(nil, "load"))
	assert.Equal(t, context.Canceled, m.MapError(context.Canceled, "load"))

	err := m.MapError(errors.New("connection refused"), "save")
	assert.ErrorIs(t, err, errs.ErrStorage)

	var storageErr *errs.StorageError
	require.ErrorAs(t, err, &storageErr)
	assert.Equal(t, "save", storageErr.Op)
	assert.Equal(t, Backend, storageErr.Backend)
	assert.Contains(t, storageErr.Error(), "connection")
}

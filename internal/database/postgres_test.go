package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewPostgresPool_InvalidDSN(t *testing.T) {
	_, err := NewPostgresPool(context.Background(), PoolConfig{DSN: "postgres://%zz"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "parsing dsn")
}

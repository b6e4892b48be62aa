//go:build integration

package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/CareVoice/carevoice-backend/db"
	"github.com/CareVoice/carevoice-backend/internal/store"
	"github.com/CareVoice/carevoice-backend/internal/store/storetest"
)

// TestFeedbackStore_Conformance runs the shared conformance suite against a
// real database, covering what the mocked tests cannot: ORDER BY, generated
// id sequencing and RowsAffected semantics.
//
//	DATABASE_URL=postgres://... go test -tags integration ./internal/store/postgres
func TestFeedbackStore_Conformance(t *testing.T) {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("DATABASE_URL not set")
	}

	require.NoError(t, db.RunMigrations(dbURL))

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dbURL)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	storetest.Run(t, func(t *testing.T) store.FeedbackStore {
		_, err := pool.Exec(ctx, "TRUNCATE feedbacks RESTART IDENTITY")
		require.NoError(t, err)
		return NewFeedbackStore(pool, 5*time.Second)
	})
}

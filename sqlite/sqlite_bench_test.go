package sqlite_test

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/fwojciec/linkcrawl"
	"github.com/fwojciec/linkcrawl/sqlite"
	"github.com/stretchr/testify/require"
)

// BenchmarkLinkStore_SaveLink measures per-page save cost during a crawl.
func BenchmarkLinkStore_SaveLink(b *testing.B) {
	db := sqlite.NewDB(filepath.Join(b.TempDir(), "bench.db"))
	require.NoError(b, db.Open())
	defer db.Close()

	store := sqlite.NewLinkStore(db)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := store.SaveLink(ctx, fmt.Sprintf("https://example.com/docs/page%d", i)); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkLinkStore_FindLinksByAddress measures indexed lookup against a
// populated table.
func BenchmarkLinkStore_FindLinksByAddress(b *testing.B) {
	db := sqlite.NewDB(filepath.Join(b.TempDir(), "bench.db"))
	require.NoError(b, db.Open())
	defer db.Close()

	store := sqlite.NewLinkStore(db)
	ctx := context.Background()
	for i := 0; i < 5000; i++ {
		require.NoError(b, store.SaveLink(ctx, fmt.Sprintf("https://example.com/docs/page%d", i)))
	}
	address := "https://example.com/docs/page4321"

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		links, err := store.FindLinks(ctx, linkcrawl.LinkFilter{Address: &address})
		if err != nil {
			b.Fatal(err)
		}
		if len(links) != 1 {
			b.Fatalf("got %d rows", len(links))
		}
	}
}

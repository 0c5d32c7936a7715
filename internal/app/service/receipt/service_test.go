package receipt

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hilalgiving/ledger/internal/repo/repotest"
	"github.com/hilalgiving/ledger/pkg/config"
)

func TestAllocate_Format(t *testing.T) {
	cfg := &config.Config{Receipt: config.ReceiptConfig{Prefix: "DN"}}
	svc := NewService(repotest.NewMemReceipts(), cfg, zap.NewNop().Sugar())

	n, err := svc.Allocate(context.Background())
	require.NoError(t, err)
	require.Equal(t, "DN-000001", n)

	n, err = svc.Allocate(context.Background())
	require.NoError(t, err)
	require.Equal(t, "DN-000002", n)
}

func TestAllocate_DefaultPrefix(t *testing.T) {
	svc := NewService(repotest.NewMemReceipts(), &config.Config{}, zap.NewNop().Sugar())

	n, err := svc.Allocate(context.Background())
	require.NoError(t, err)
	require.Equal(t, "DN-000001", n)
}

func TestAllocate_ConcurrentUnique(t *testing.T) {
	cfg := &config.Config{Receipt: config.ReceiptConfig{Prefix: "DN"}}
	svc := NewService(repotest.NewMemReceipts(), cfg, zap.NewNop().Sugar())

	const n = 100
	results := make(chan string, n)
	errs := make(chan error, n)
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			num, err := svc.Allocate(context.Background())
			errs <- err
			results <- num
		}()
	}
	wg.Wait()
	close(results)
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
	seen := map[string]bool{}
	for num := range results {
		require.False(t, seen[num], "duplicate receipt number %s", num)
		seen[num] = true
	}
	require.Len(t, seen, n)
}

func TestAllocate_CounterFailure(t *testing.T) {
	receipts := repotest.NewMemReceipts()
	receipts.FailNext = true
	svc := NewService(receipts, &config.Config{}, zap.NewNop().Sugar())

	_, err := svc.Allocate(context.Background())
	require.Error(t, err)
}

package trading

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"ryzer-backend/internal/application/assetevents"
	"ryzer-backend/internal/application/catalog"
	"ryzer-backend/internal/application/ledger"
	"ryzer-backend/internal/domain"
	"ryzer-backend/internal/infrastructure/database"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTradingTest(t *testing.T) (*Service, *gorm.DB) {
	db, err := database.OpenMemory()
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	require.NoError(t, (&catalog.Service{DB: db}).Seed(context.Background(), catalog.DefaultAssets()))
	return &Service{DB: db}, db
}

func supplyOf(t *testing.T, db *gorm.DB, id int64) int64 {
	asset, err := (&catalog.Service{DB: db}).GetAsset(context.Background(), id)
	require.NoError(t, err)
	return asset.Supply
}

func ledgerLen(t *testing.T, db *gorm.DB) int {
	txs, err := (&ledger.Service{DB: db}).ListAll(context.Background())
	require.NoError(t, err)
	return len(txs)
}

func TestBuy_Success(t *testing.T) {
	svc, db := setupTradingTest(t)
	fixed := time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)
	svc.Now = func() time.Time { return fixed }

	receipt, err := svc.Buy(context.Background(), 1, 10, "  Alice ")
	require.NoError(t, err)

	assert.Equal(t, int64(40), receipt.RemainingSupply)
	assert.Equal(t, int64(10), receipt.Transaction.Quantity)
	assert.True(t, receipt.Transaction.TotalPrice.Equal(decimal.NewFromInt(1000000)))
	assert.Equal(t, "Alice", receipt.Transaction.Buyer)
	assert.Equal(t, "Luxury Apartment in Mumbai", receipt.Transaction.AssetName)
	assert.Equal(t, int64(1), receipt.Transaction.AssetID)
	assert.True(t, receipt.Transaction.CreatedAt.Equal(fixed))
	assert.NotZero(t, receipt.Transaction.ID)

	assert.Equal(t, int64(40), supplyOf(t, db, 1))
	assert.Equal(t, 1, ledgerLen(t, db))

	events, err := (&assetevents.Service{DB: db}).ListForAsset(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, events, 1)
	require.NotNil(t, events[0].TransactionID)
	assert.Equal(t, receipt.Transaction.ID, *events[0].TransactionID)
}

func TestBuy_InsufficientSupplyLeavesStateUnchanged(t *testing.T) {
	svc, db := setupTradingTest(t)
	ctx := context.Background()

	_, err := svc.Buy(ctx, 1, 10, "Alice")
	require.NoError(t, err)

	_, err = svc.Buy(ctx, 1, 45, "Bob")
	var insufficient *catalog.InsufficientSupplyError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, int64(40), insufficient.Available)

	assert.Equal(t, int64(40), supplyOf(t, db, 1))
	assert.Equal(t, 1, ledgerLen(t, db))
}

func TestBuy_UnknownAsset(t *testing.T) {
	svc, db := setupTradingTest(t)

	_, err := svc.Buy(context.Background(), 99, 1, "Alice")
	assert.ErrorIs(t, err, catalog.ErrAssetNotFound)
	assert.Equal(t, 0, ledgerLen(t, db))
	for _, a := range catalog.DefaultAssets() {
		assert.Equal(t, a.Supply, supplyOf(t, db, a.ID))
	}
}

func TestBuy_ValidationRejectedBeforeLookup(t *testing.T) {
	svc, db := setupTradingTest(t)
	ctx := context.Background()

	_, err := svc.Buy(ctx, 99, 0, "Alice")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.ErrorIs(t, err, catalog.ErrInvalidQuantity)

	_, err = svc.Buy(ctx, 1, 1, "   ")
	require.ErrorAs(t, err, &verr)
	assert.ErrorIs(t, err, ErrBuyerNameRequired)

	assert.Equal(t, int64(50), supplyOf(t, db, 1))
	assert.Equal(t, 0, ledgerLen(t, db))
}

func TestBuy_BuysOutEntireSupply(t *testing.T) {
	svc, db := setupTradingTest(t)
	ctx := context.Background()

	receipt, err := svc.Buy(ctx, 4, 15, "Alice")
	require.NoError(t, err)
	assert.Equal(t, int64(0), receipt.RemainingSupply)

	_, err = svc.Buy(ctx, 4, 1, "Bob")
	var insufficient *catalog.InsufficientSupplyError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, int64(0), insufficient.Available)
	assert.Equal(t, int64(0), supplyOf(t, db, 4))
}

func TestBuy_StorageFailureRollsBack(t *testing.T) {
	svc, db := setupTradingTest(t)
	require.NoError(t, db.Migrator().DropTable(&domain.Transaction{}))

	_, err := svc.Buy(context.Background(), 1, 5, "Alice")
	require.Error(t, err)
	var verr *ValidationError
	assert.False(t, errors.As(err, &verr))
	assert.Equal(t, int64(50), supplyOf(t, db, 1))
}

func TestBuy_ConcurrentPurchasesNeverOversell(t *testing.T) {
	svc, db := setupTradingTest(t)
	ctx := context.Background()

	const n = 20
	const qty = 4
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		failures  int
		sold      int64
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			receipt, err := svc.Buy(ctx, 4, qty, "Buyer")
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				var insufficient *catalog.InsufficientSupplyError
				assert.ErrorAs(t, err, &insufficient)
				failures++
				return
			}
			successes++
			sold += receipt.Transaction.Quantity
		}()
	}
	wg.Wait()

	assert.Equal(t, n, successes+failures)
	assert.LessOrEqual(t, sold, int64(15))
	assert.Equal(t, 3, successes)
	assert.Equal(t, int64(15)-sold, supplyOf(t, db, 4))
	assert.Equal(t, successes, ledgerLen(t, db))
}

func TestBuy_SupplyNeverNegativeAcrossSequence(t *testing.T) {
	svc, db := setupTradingTest(t)
	ctx := context.Background()

	requests := []struct {
		asset int64
		qty   int64
	}{{2, 7}, {2, 7}, {2, 7}, {2, 6}, {3, 35}, {3, 1}, {1, 49}, {1, 2}, {1, 1}}
	for _, r := range requests {
		_, _ = svc.Buy(ctx, r.asset, r.qty, "Dana")
		for _, a := range catalog.DefaultAssets() {
			assert.GreaterOrEqual(t, supplyOf(t, db, a.ID), int64(0))
		}
	}
	assert.Equal(t, int64(0), supplyOf(t, db, 2))
	assert.Equal(t, int64(0), supplyOf(t, db, 3))
	assert.Equal(t, int64(0), supplyOf(t, db, 1))
}

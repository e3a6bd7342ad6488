package repository

import (
	"context"
	"sync"
	"testing"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
	"storefront/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type checkoutStack struct {
	db       *gorm.DB
	cart     *usecase.CartUsecase
	checkout *usecase.CheckoutUsecase
	orders   *usecase.OrderUsecase
	admin    *usecase.AdminOrderUsecase
	products *usecase.ProductUsecase
}

func newCheckoutStack(t *testing.T) checkoutStack {
	t.Helper()
	db := openTestDB(t)
	tx := NewTxManagerGorm(db)
	productRepo := NewProductGormRepository(db)
	orderRepo := NewOrderGormRepository(db)
	orderItemRepo := NewOrderItemGormRepository(db)

	return checkoutStack{
		db:       db,
		cart:     usecase.NewCartUsecase(NewCartGormRepository(db), NewCartItemGormRepository(db), productRepo),
		checkout: usecase.NewCheckoutUsecase(tx, nil),
		orders:   usecase.NewOrderUsecase(orderRepo, orderItemRepo),
		admin:    usecase.NewAdminOrderUsecase(tx, orderRepo, orderItemRepo),
		products: usecase.NewProductUsecase(productRepo, tx),
	}
}

func (s checkoutStack) stockOf(t *testing.T, productID int64) *int64 {
	t.Helper()
	p, err := NewProductGormRepository(s.db).FindByID(context.Background(), productID)
	require.NoError(t, err)
	return p.StockQuantity
}

func (s checkoutStack) countOrders(t *testing.T) int64 {
	t.Helper()
	var n int64
	require.NoError(t, s.db.Model(&model.Order{}).Count(&n).Error)
	return n
}

func TestCheckout_InsufficientStockRollsBackEverything(t *testing.T) {
	s := newCheckoutStack(t)
	ctx := context.Background()
	u := seedUser(t, s.db, "short@example.com")
	plenty := seedProduct(t, s.db, "Mug", 850, int64p(10))
	scarce := seedProduct(t, s.db, "Lamp", 3000, int64p(2))

	_, err := s.cart.AddItem(ctx, u.ID, usecase.AddItemInput{ProductID: plenty.ID, Quantity: 3})
	require.NoError(t, err)
	before, err := s.cart.AddItem(ctx, u.ID, usecase.AddItemInput{ProductID: scarce.ID, Quantity: 2})
	require.NoError(t, err)

	// stock drops below the cart quantity after the add
	require.NoError(t, s.db.Model(&model.Product{}).Where("id = ?", scarce.ID).Update("stock_quantity", 1).Error)

	_, err = s.checkout.Checkout(ctx, u.ID)
	require.Error(t, err)
	assert.Equal(t, usecase.CodeInsufficientStock, usecase.CodeOf(err))

	assert.Equal(t, int64(0), s.countOrders(t))
	assert.Equal(t, int64(10), *s.stockOf(t, plenty.ID))
	assert.Equal(t, int64(1), *s.stockOf(t, scarce.ID))

	after, err := s.cart.GetCart(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, before.ID, after.ID)
	assert.Equal(t, model.CartStatusActive, after.Status)
	assert.Len(t, after.Items, 2)
}

func TestCheckout_OrderItemsKeepSnapshotAfterProductChanges(t *testing.T) {
	s := newCheckoutStack(t)
	ctx := context.Background()
	u := seedUser(t, s.db, "snap@example.com")
	admin := seedUser(t, s.db, "admin@example.com")
	p := seedProduct(t, s.db, "Notebook", 400, int64p(5))

	_, err := s.cart.AddItem(ctx, u.ID, usecase.AddItemInput{ProductID: p.ID, Quantity: 2})
	require.NoError(t, err)
	placed, err := s.checkout.Checkout(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(800), placed.Order.TotalAmount)
	assert.Equal(t, int64(3), *s.stockOf(t, p.ID))

	name := "Notebook v2"
	price := int64(999)
	_, err = s.products.Update(ctx, admin.ID, p.ID, usecase.UpdateProductInput{Name: &name, Price: &price})
	require.NoError(t, err)
	_, err = s.products.Deactivate(ctx, admin.ID, p.ID)
	require.NoError(t, err)

	mine, err := s.orders.GetMine(ctx, u.ID, placed.Order.ID)
	require.NoError(t, err)
	require.Len(t, mine.Items, 1)
	assert.Equal(t, "Notebook", mine.Items[0].ProductName)
	assert.Equal(t, int64(400), mine.Items[0].Price)
	assert.Equal(t, int64(2), mine.Items[0].Quantity)
	assert.Equal(t, int64(800), mine.TotalAmount)

	viewed, err := s.admin.Get(ctx, placed.Order.ID)
	require.NoError(t, err)
	require.Len(t, viewed.Items, 1)
	assert.Equal(t, "Notebook", viewed.Items[0].ProductName)
	assert.Equal(t, int64(400), viewed.Items[0].Price)
	assert.Equal(t, "snap@example.com", viewed.Email)
}

func TestCheckout_ConcurrentCheckoutsOfLastUnitCreateOneOrder(t *testing.T) {
	s := newCheckoutStack(t)
	ctx := context.Background()
	p := seedProduct(t, s.db, "Last one", 5000, int64p(1))

	const n = 6
	users := make([]model.User, n)
	for i := range users {
		users[i] = seedUser(t, s.db, "buyer"+string(rune('a'+i))+"@example.com")
		_, err := s.cart.AddItem(ctx, users[i].ID, usecase.AddItemInput{ProductID: p.ID, Quantity: 1})
		require.NoError(t, err)
	}

	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := range users {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = s.checkout.Checkout(ctx, users[i].ID)
		}(i)
	}
	wg.Wait()

	won := 0
	for _, err := range errs {
		if err == nil {
			won++
			continue
		}
		assert.Equal(t, usecase.CodeInsufficientStock, usecase.CodeOf(err))
	}
	assert.Equal(t, 1, won)
	assert.Equal(t, int64(1), s.countOrders(t))
	assert.Equal(t, int64(0), *s.stockOf(t, p.ID))
}

func TestCheckout_SameCartTwiceConcurrentlyCreatesOneOrder(t *testing.T) {
	s := newCheckoutStack(t)
	ctx := context.Background()
	u := seedUser(t, s.db, "double@example.com")
	p := seedProduct(t, s.db, "Pen", 120, int64p(10))

	_, err := s.cart.AddItem(ctx, u.ID, usecase.AddItemInput{ProductID: p.ID, Quantity: 1})
	require.NoError(t, err)

	const n = 4
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = s.checkout.Checkout(ctx, u.ID)
		}(i)
	}
	wg.Wait()

	won := 0
	for _, err := range errs {
		if err == nil {
			won++
		}
	}
	assert.Equal(t, 1, won)
	assert.Equal(t, int64(1), s.countOrders(t))
	assert.Equal(t, int64(9), *s.stockOf(t, p.ID))
}

func TestCheckout_NextCartAccessCreatesFreshActiveCart(t *testing.T) {
	s := newCheckoutStack(t)
	ctx := context.Background()
	u := seedUser(t, s.db, "again@example.com")
	p := seedProduct(t, s.db, "Cup", 300, nil)

	first, err := s.cart.AddItem(ctx, u.ID, usecase.AddItemInput{ProductID: p.ID, Quantity: 2})
	require.NoError(t, err)
	_, err = s.checkout.Checkout(ctx, u.ID)
	require.NoError(t, err)

	var closed model.Cart
	require.NoError(t, s.db.First(&closed, first.ID).Error)
	assert.Equal(t, model.CartStatusCheckedOut, closed.Status)

	next, err := s.cart.GetCart(ctx, u.ID)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, next.ID)
	assert.Equal(t, model.CartStatusActive, next.Status)
	assert.Empty(t, next.Items)
	assert.Equal(t, int64(0), next.Total)
}

func TestCartItemGorm_UpsertRefusesCheckedOutCart(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	u := seedUser(t, db, "closed@example.com")
	p := seedProduct(t, db, "Mug", 850, nil)

	carts := NewCartGormRepository(db)
	c, err := carts.GetOrCreateActive(ctx, u.ID)
	require.NoError(t, err)
	require.NoError(t, carts.UpdateStatus(ctx, c.ID, model.CartStatusActive, model.CartStatusCheckedOut))

	items := NewCartItemGormRepository(db)
	assert.ErrorIs(t, items.Upsert(ctx, c.ID, p.ID, 1), repo.ErrCartNotActive)

	var n int64
	require.NoError(t, db.Model(&model.CartItem{}).Where("cart_id = ?", c.ID).Count(&n).Error)
	assert.Equal(t, int64(0), n)
}

func TestCart_AddDuringCheckoutLandsInFreshCart(t *testing.T) {
	s := newCheckoutStack(t)
	ctx := context.Background()
	u := seedUser(t, s.db, "overlap@example.com")
	first := seedProduct(t, s.db, "Mug", 850, nil)
	late := seedProduct(t, s.db, "Pen", 120, nil)

	_, err := s.cart.AddItem(ctx, u.ID, usecase.AddItemInput{ProductID: first.ID, Quantity: 1})
	require.NoError(t, err)

	var wg sync.WaitGroup
	var placed usecase.CheckoutOutput
	var checkoutErr, addErr error
	var added usecase.CartOutput
	wg.Add(2)
	go func() {
		defer wg.Done()
		placed, checkoutErr = s.checkout.Checkout(ctx, u.ID)
	}()
	go func() {
		defer wg.Done()
		added, addErr = s.cart.AddItem(ctx, u.ID, usecase.AddItemInput{ProductID: late.ID, Quantity: 1})
	}()
	wg.Wait()
	require.NoError(t, checkoutErr)
	require.NoError(t, addErr)

	// the late item is either in the order or in the cart that is ACTIVE now
	inOrder := false
	for _, it := range placed.Order.Items {
		if it.ProductID == late.ID {
			inOrder = true
		}
	}
	current, err := s.cart.GetCart(ctx, u.ID)
	require.NoError(t, err)
	inCart := false
	for _, it := range current.Items {
		if it.ProductID == late.ID {
			inCart = true
		}
	}
	assert.True(t, inOrder != inCart)
	if inCart {
		assert.Equal(t, current.ID, added.ID)
	}
}

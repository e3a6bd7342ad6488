package usecase_test

import (
	"context"
	"testing"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
	"storefront/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newAdminOrderUsecase() (*usecase.AdminOrderUsecase, *TxManagerMock, *TxReposMock, *OrderRepoMock, *OrderItemRepoMock) {
	r := newTxRepos()
	tx := &TxManagerMock{Repos: r}
	tx.On("WithinTx", mock.Anything).Return(nil)
	orders := new(OrderRepoMock)
	items := new(OrderItemRepoMock)
	return usecase.NewAdminOrderUsecase(tx, orders, items), tx, r, orders, items
}

func TestAdminOrderUsecase_List_CarriesOwnerEmail(t *testing.T) {
	uc, _, _, orders, _ := newAdminOrderUsecase()
	orders.On("ListAllWithOwner", mock.Anything).Return([]model.OrderWithOwner{
		{Order: model.Order{ID: 3, UserID: 9}, Email: "a@example.com"},
	}, nil)

	outs, err := uc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, outs, 1)
	assert.Equal(t, "a@example.com", outs[0].Email)
}

func TestAdminOrderUsecase_Get_AnyOwner(t *testing.T) {
	uc, _, _, orders, items := newAdminOrderUsecase()
	orders.On("FindByIDWithOwner", mock.Anything, int64(3)).Return(model.OrderWithOwner{Order: model.Order{ID: 3, UserID: 9}, Email: "a@example.com"}, nil)
	items.On("ListByOrderID", mock.Anything, int64(3)).Return([]model.OrderItem{{ID: 1, ProductName: "Mug"}}, nil)

	out, err := uc.Get(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, int64(9), out.UserID)
	assert.Len(t, out.Items, 1)
}

func TestAdminOrderUsecase_UpdateStatus_InvalidStatus(t *testing.T) {
	uc, tx, _, _, _ := newAdminOrderUsecase()

	_, err := uc.UpdateStatus(context.Background(), 1, 3, "shipped")
	ae, ok := usecase.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, usecase.KindValidation, ae.Kind)
	assert.Equal(t, "status", ae.Errors[0].Field)
	tx.AssertNotCalled(t, "WithinTx", mock.Anything)
}

func TestAdminOrderUsecase_UpdateStatus_NotFound(t *testing.T) {
	uc, _, r, _, _ := newAdminOrderUsecase()
	r.orders.On("LockByID", mock.Anything, int64(3)).Return(model.Order{}, repo.ErrNotFound)

	_, err := uc.UpdateStatus(context.Background(), 1, 3, "paid")
	assert.Equal(t, usecase.KindNotFound, usecase.KindOf(err))
}

// No transition graph: a cancelled order may go back to pending.
func TestAdminOrderUsecase_UpdateStatus_AnyToAny_AuditsAndEmits(t *testing.T) {
	uc, _, r, _, _ := newAdminOrderUsecase()
	r.orders.On("LockByID", mock.Anything, int64(3)).Return(model.Order{ID: 3, UserID: 9, Status: model.OrderStatusCancelled}, nil)
	r.orders.On("UpdateStatus", mock.Anything, int64(3), model.OrderStatusPending).Return(model.Order{ID: 3, UserID: 9, Status: model.OrderStatusPending}, nil)
	r.auditLogs.On("Create", mock.Anything, mock.MatchedBy(func(l model.AuditLog) bool {
		return l.ActorUserID == 1 &&
			l.Action == model.AuditActionUpdateOrderStatus &&
			l.ResourceType == model.AuditResourceOrder &&
			l.ResourceID == 3 &&
			l.BeforeJSON == `{"status":"cancelled"}` &&
			l.AfterJSON == `{"status":"pending"}`
	})).Return(nil)
	r.outbox.On("Insert", mock.Anything, mock.MatchedBy(func(e model.OutboxEvent) bool {
		return e.Type == model.EventOrderStatusChanged && e.Key == "3"
	})).Return(nil)

	out, err := uc.UpdateStatus(context.Background(), 1, 3, " pending ")
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusPending, out.Status)
	r.auditLogs.AssertExpectations(t)
	r.outbox.AssertExpectations(t)
}

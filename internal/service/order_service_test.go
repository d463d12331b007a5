package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fjod/swiftrail/domain"
	"github.com/fjod/swiftrail/internal/render"
	"github.com/fjod/swiftrail/internal/repository"
	"github.com/fjod/swiftrail/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storedOrder(ref string, at time.Time) domain.Order {
	item := parisLyonItem()
	return domain.Order{
		ID:          "id-" + ref,
		Email:       "ana@example.com",
		Reference:   ref,
		PurchasedAt: at,
		Total:       decimal.RequireFromString("53"),
		Tickets:     []domain.Command{item.Issue(ref+"-001", "PALY20250410TGV123D0011234", at)},
	}
}

func newOrderService(orders *MockOrderRepository, transport *MockTransport) *OrderService {
	return NewOrderService(
		NewOrderHandler(orders, time.Second),
		NewMailHandler(transport, time.Second),
		render.NewRenderer(),
		logger.Discard(),
	)
}

func TestOrderHistory_NewestFirst(t *testing.T) {
	orders := &MockOrderRepository{Orders: []domain.Order{
		storedOrder("SR-1-ABCD", fixedNow.Add(-time.Hour)),
		storedOrder("SR-2-EFGH", fixedNow),
	}}
	svc := newOrderService(orders, &MockTransport{})

	history, err := svc.OrderHistory(context.Background(), "ana@example.com")

	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "SR-2-EFGH", history[0].Reference)
}

func TestOrderHistory_TrimsEmail(t *testing.T) {
	orders := &MockOrderRepository{Orders: []domain.Order{storedOrder("SR-1-ABCD", fixedNow)}}
	svc := newOrderService(orders, &MockTransport{})

	history, err := svc.OrderHistory(context.Background(), "  ana@example.com ")

	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestOrderHistory_RequiresEmail(t *testing.T) {
	svc := newOrderService(&MockOrderRepository{}, &MockTransport{})

	_, err := svc.OrderHistory(context.Background(), " ")

	assert.ErrorIs(t, err, ErrInvalidEmail)
}

func TestResendConfirmation(t *testing.T) {
	orders := &MockOrderRepository{Orders: []domain.Order{storedOrder("SR-1-ABCD", fixedNow)}}
	transport := &MockTransport{}
	svc := newOrderService(orders, transport)

	id, err := svc.ResendConfirmation(context.Background(), "SR-1-ABCD")

	require.NoError(t, err)
	assert.NotEmpty(t, id)
	require.Len(t, transport.Sent, 1)
	assert.Equal(t, "ana@example.com", transport.Sent[0].To)
	assert.Contains(t, transport.Sent[0].TextBody, "SR-1-ABCD-001")
	assert.Contains(t, transport.Sent[0].TextBody, "Total: 53.00 EUR")
	assert.Len(t, orders.Orders, 1, "resending never issues a new order")
}

func TestResendConfirmation_NotFound(t *testing.T) {
	svc := newOrderService(&MockOrderRepository{}, &MockTransport{})

	_, err := svc.ResendConfirmation(context.Background(), "SR-9-ZZZZ")

	assert.ErrorIs(t, err, repository.ErrOrderNotFound)
}

func TestResendConfirmation_DeliveryError(t *testing.T) {
	orders := &MockOrderRepository{Orders: []domain.Order{storedOrder("SR-1-ABCD", fixedNow)}}
	transport := &MockTransport{Err: errors.New("relay down")}
	svc := newOrderService(orders, transport)

	_, err := svc.ResendConfirmation(context.Background(), "SR-1-ABCD")

	var dErr *DeliveryError
	require.ErrorAs(t, err, &dErr)
	assert.Equal(t, "SR-1-ABCD", dErr.OrderReference)
}

func TestResendConfirmation_UsesPricesFromPurchase(t *testing.T) {
	order := storedOrder("SR-1-ABCD", fixedNow)
	order.Total = decimal.RequireFromString("47.50")
	order.Prices = []domain.TicketPrice{{
		Price: decimal.RequireFromString("47.50"),
		Options: []domain.PricedOption{
			{Code: domain.OptionQuietSeat, Price: decimal.RequireFromString("1.50")},
			{Code: domain.OptionExtraBaggage, Price: decimal.RequireFromString("1")},
		},
	}}
	transport := &MockTransport{}
	svc := newOrderService(&MockOrderRepository{Orders: []domain.Order{order}}, transport)

	_, err := svc.ResendConfirmation(context.Background(), "SR-1-ABCD")

	require.NoError(t, err)
	require.Len(t, transport.Sent, 1)
	body := transport.Sent[0].TextBody
	assert.Contains(t, body, "Quiet seat (+1.50)")
	assert.Contains(t, body, "Price: 47.50 EUR")
	assert.Contains(t, body, "Total: 47.50 EUR")
	assert.NotContains(t, body, "Price: 53.00 EUR")
}

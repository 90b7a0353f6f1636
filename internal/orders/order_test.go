package orders_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/brewcart/internal/cart"
	"github.com/angelmondragon/brewcart/internal/orders"
	"github.com/angelmondragon/brewcart/pkg/enums"
)

var (
	t0 = time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	t1 = t0.Add(5 * time.Minute)
)

func sequentialIDs() func() orders.ID {
	n := 0
	return func() orders.ID {
		n++
		return orders.ID("order-" + string(rune('0'+n)))
	}
}

func sampleCart() cart.Cart {
	return cart.Cart{Items: []cart.Line{
		{Key: "0|2|1|", ProductIndex: 0, Name: "Cappuccino", Options: "Tall; Oat", UnitPrice: 110, Qty: 3, TotalPrice: 330},
		{Key: "1|1|2|1", ProductIndex: 1, Name: "Latte", Options: "Short; Soy; Sugar", UnitPrice: 150, Qty: 1, TotalPrice: 150},
	}}
}

func TestSyncFromCartCreatesOrder(t *testing.T) {
	order := orders.SyncFromCart(nil, sampleCart(), t0, sequentialIDs())

	assert.Equal(t, orders.ID("order-1"), order.ID)
	assert.Equal(t, t0, order.CreatedAt)
	assert.Equal(t, int64(480), order.Subtotal)
	assert.Zero(t, order.DiscountPercent)
	assert.Zero(t, order.Discount)
	assert.Equal(t, int64(480), order.Total())
	require.Len(t, order.Items, 2)
	assert.Equal(t, orders.Item{ProductIndex: 0, Name: "Cappuccino", Options: "Tall; Oat", Qty: 3, UnitPrice: 110, TotalPrice: 330}, order.Items[0])
}

func TestSyncFromCartReplacesInPlace(t *testing.T) {
	ids := sequentialIDs()
	first := orders.SyncFromCart(nil, sampleCart(), t0, ids)

	c, err := cart.Remove(sampleCart(), "1|1|2|1")
	require.NoError(t, err)
	second := orders.SyncFromCart(&first, c, t1, ids)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.CreatedAt, second.CreatedAt)
	assert.Equal(t, int64(330), second.Subtotal)
	assert.Len(t, second.Items, 1)
	assert.Len(t, first.Items, 2, "previous snapshot must be untouched")
}

func TestSyncFromCartResetsDiscount(t *testing.T) {
	existing := orders.Order{ID: "legacy", CreatedAt: t0, DiscountPercent: 10, Discount: 48}
	order := orders.SyncFromCart(&existing, sampleCart(), t1, nil)
	assert.Equal(t, orders.ID("legacy"), order.ID)
	assert.Zero(t, order.DiscountPercent)
	assert.Zero(t, order.Discount)
	assert.Equal(t, order.Subtotal, order.Total())
	assert.Equal(t, float64(10), existing.DiscountPercent, "stored order must be untouched")
}

func TestSnapshotIsDecoupledFromCart(t *testing.T) {
	c := sampleCart()
	order := orders.SyncFromCart(nil, c, t0, nil)
	c.Items[0].Qty = 99
	c.Items[0].Name = "changed"
	assert.Equal(t, 3, order.Items[0].Qty)
	assert.Equal(t, "Cappuccino", order.Items[0].Name)
	assert.NotEmpty(t, order.ID, "default id source should be used")
}

func TestReconcileClearsOnEmptyCart(t *testing.T) {
	active := orders.Reconcile(nil, sampleCart(), t0, sequentialIDs())
	require.NotNil(t, active)

	assert.Nil(t, orders.Reconcile(active, cart.Cart{}, t1, nil))
}

func TestOrderJSONRoundTrip(t *testing.T) {
	order := orders.SyncFromCart(nil, sampleCart(), t0, func() orders.ID { return "abc" })
	data, err := json.Marshal(order)
	require.NoError(t, err)

	var generic map[string]any
	require.NoError(t, json.Unmarshal(data, &generic))
	assert.Equal(t, "abc", generic["id"])
	assert.Equal(t, "2026-03-01T09:30:00Z", generic["createdAt"])
	assert.Equal(t, float64(t0.UnixMilli()), generic["timestamp"])

	var decoded orders.Order
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, order, decoded)
}

func TestOrderDecodesLegacyShape(t *testing.T) {
	legacy := `{"id":1772357400000,"timestamp":1772357400000,"items":[{"index":0,"name":"Cappuccino","options":"Tall; Oat","qty":2,"unitPrice":110,"totalPrice":220}],"subtotal":220,"discount":0,"discountPercent":0}`

	var order orders.Order
	require.NoError(t, json.Unmarshal([]byte(legacy), &order))
	assert.Equal(t, orders.ID("1772357400000"), order.ID)
	assert.Equal(t, time.UnixMilli(1772357400000).UTC(), order.CreatedAt)
	assert.Equal(t, int64(220), order.Subtotal)

	out, err := json.Marshal(order)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"id":1772357400000`)
}

func TestOrderIDsWithLeadingZerosStayStrings(t *testing.T) {
	order := orders.SyncFromCart(nil, sampleCart(), t0, func() orders.ID { return "007" })
	out, err := json.Marshal(order)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"id":"007"`)

	var decoded orders.Order
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, orders.ID("007"), decoded.ID)

	for id, want := range map[orders.ID]string{
		"42":                   `42`,
		"-5":                   `-5`,
		"0":                    `0`,
		"00":                   `"00"`,
		"+1":                   `"+1"`,
		"99999999999999999999": `"99999999999999999999"`,
	} {
		got, err := json.Marshal(id)
		require.NoError(t, err, "id %q", id)
		assert.Equal(t, want, string(got), "id %q", id)
	}
}

func TestProjectPlacesItemsInOrdered(t *testing.T) {
	order := orders.SyncFromCart(nil, sampleCart(), t0, nil)
	board := orders.Project(&order)

	require.Len(t, board.Buckets, 4)
	stages := make([]enums.OrderStage, 0, 4)
	for _, b := range board.Buckets {
		stages = append(stages, b.Stage)
	}
	assert.Equal(t, []enums.OrderStage{
		enums.OrderStageOrdered, enums.OrderStagePreparing, enums.OrderStageFinishing, enums.OrderStageServed,
	}, stages)

	assert.Len(t, board.Bucket(enums.OrderStageOrdered).Items, 2)
	for _, stage := range []enums.OrderStage{enums.OrderStagePreparing, enums.OrderStageFinishing, enums.OrderStageServed} {
		bucket := board.Bucket(stage)
		require.NotNil(t, bucket, "stage %s must stay addressable", stage)
		assert.Empty(t, bucket.Items)
	}
	assert.Nil(t, board.Bucket(enums.OrderStage("cancelled")))

	empty := orders.Project(nil)
	assert.Empty(t, empty.Bucket(enums.OrderStageOrdered).Items)
}

func TestBoardMove(t *testing.T) {
	order := orders.SyncFromCart(nil, sampleCart(), t0, nil)
	board := orders.Project(&order)

	require.NoError(t, board.Move(enums.OrderStageOrdered, enums.OrderStagePreparing, 1))
	assert.Len(t, board.Bucket(enums.OrderStageOrdered).Items, 1)
	require.Len(t, board.Bucket(enums.OrderStagePreparing).Items, 1)
	assert.Equal(t, "Latte", board.Bucket(enums.OrderStagePreparing).Items[0].Name)
	assert.Len(t, order.Items, 2, "projection must not alias the order")

	assert.Error(t, board.Move(enums.OrderStageServed, enums.OrderStageOrdered, 0))
	assert.Error(t, board.Move(enums.OrderStage("x"), enums.OrderStageOrdered, 0))
}

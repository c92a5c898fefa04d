package tool

import (
	"errors"
	"fmt"
	"time"
)

// ErrOrderNotFound is returned by all order operations for unknown ids.
var ErrOrderNotFound = errors.New("order not found")

const dateLayout = "2006-01-02"

// OrderBook answers order, tracking, warranty, and return questions against
// the demo order set. The clock is injectable so date-derived fields stay
// deterministic in tests.
type OrderBook struct {
	now func() time.Time
}

func NewOrderBook() *OrderBook {
	return &OrderBook{now: time.Now}
}

// NewOrderBookAt pins the clock. Test helper, also used by the demo script.
func NewOrderBookAt(now func() time.Time) *OrderBook {
	return &OrderBook{now: now}
}

// OrderInfo is an order record enriched with date-derived status fields.
type OrderInfo struct {
	OrderID string `json:"order_id"`
	Order
	DaysSinceDelivery int  `json:"days_since_delivery"`
	WarrantyActive    bool `json:"warranty_active"`
	ReturnEligible    bool `json:"return_eligible"`
}

type TrackingInfo struct {
	OrderID           string `json:"order_id"`
	Status            string `json:"status"`
	Carrier           string `json:"carrier"`
	TrackingNumber    string `json:"tracking_number"`
	EstimatedDelivery string `json:"estimated_delivery,omitempty"`
	DeliveredOn       string `json:"delivered_on,omitempty"`
	LastLocation      string `json:"last_location"`
}

type WarrantyInfo struct {
	OrderID       string   `json:"order_id"`
	Product       string   `json:"product"`
	WarrantyTerm  string   `json:"warranty_term"`
	Expires       string   `json:"expires"`
	Active        bool     `json:"active"`
	DaysRemaining int      `json:"days_remaining"`
	Coverage      []string `json:"coverage"`
}

type ReturnAuthorization struct {
	OrderID       string   `json:"order_id"`
	Authorized    bool     `json:"authorized"`
	Reason        string   `json:"reason"`
	RMANumber     string   `json:"rma_number,omitempty"`
	RestockingFee float64  `json:"restocking_fee"`
	RefundAmount  float64  `json:"refund_amount"`
	Denial        string   `json:"denial_reason,omitempty"`
	NextSteps     []string `json:"next_steps,omitempty"`
}

// Lookup returns the full order record with derived eligibility flags.
func (b *OrderBook) Lookup(orderID string) (OrderInfo, error) {
	o, ok := demoOrders[orderID]
	if !ok {
		return OrderInfo{}, fmt.Errorf("%w: %s", ErrOrderNotFound, orderID)
	}
	info := OrderInfo{OrderID: orderID, Order: o}
	if delivered, err := time.Parse(dateLayout, o.DeliveryDate); err == nil {
		days := int(b.now().Sub(delivered).Hours() / 24)
		if days < 0 {
			days = 0
		}
		info.DaysSinceDelivery = days
		info.ReturnEligible = o.Status == "delivered" && days <= demoReturnPolicy.PeriodDays
	}
	if expires, err := time.Parse(dateLayout, o.WarrantyExpires); err == nil {
		info.WarrantyActive = b.now().Before(expires.AddDate(0, 0, 1))
	}
	return info, nil
}

// Track reports shipment progress. Delivered orders report the delivery date;
// in-flight orders get a synthetic carrier position.
func (b *OrderBook) Track(orderID string) (TrackingInfo, error) {
	o, ok := demoOrders[orderID]
	if !ok {
		return TrackingInfo{}, fmt.Errorf("%w: %s", ErrOrderNotFound, orderID)
	}
	t := TrackingInfo{
		OrderID:        orderID,
		Status:         o.Status,
		Carrier:        "FastShip Express",
		TrackingNumber: "FS" + orderID + "TRK",
	}
	switch o.Status {
	case "delivered":
		t.DeliveredOn = o.DeliveryDate
		t.LastLocation = "Delivered to customer address"
	case "shipped":
		t.EstimatedDelivery = o.DeliveryDate
		t.LastLocation = "Regional distribution center"
	default:
		t.LastLocation = "Fulfillment warehouse"
	}
	return t, nil
}

// WarrantyStatus reports warranty state and the covered failure classes for
// the order's warranty tier.
func (b *OrderBook) WarrantyStatus(orderID string) (WarrantyInfo, error) {
	o, ok := demoOrders[orderID]
	if !ok {
		return WarrantyInfo{}, fmt.Errorf("%w: %s", ErrOrderNotFound, orderID)
	}
	w := WarrantyInfo{
		OrderID:      orderID,
		Product:      o.Product,
		WarrantyTerm: o.Warranty,
		Expires:      o.WarrantyExpires,
		Coverage:     warrantyCoverage(o.Warranty),
	}
	if expires, err := time.Parse(dateLayout, o.WarrantyExpires); err == nil {
		now := b.now()
		w.Active = now.Before(expires.AddDate(0, 0, 1))
		if w.Active {
			w.DaysRemaining = int(expires.Sub(now).Hours() / 24)
		}
	}
	return w, nil
}

// InitiateReturn authorizes a return when the order is inside the return
// window. Free-return reasons waive the restocking fee.
func (b *OrderBook) InitiateReturn(orderID, reason string) (ReturnAuthorization, error) {
	o, ok := demoOrders[orderID]
	if !ok {
		return ReturnAuthorization{}, fmt.Errorf("%w: %s", ErrOrderNotFound, orderID)
	}
	auth := ReturnAuthorization{OrderID: orderID, Reason: reason}
	info, err := b.Lookup(orderID)
	if err != nil {
		return ReturnAuthorization{}, err
	}
	if !info.ReturnEligible {
		auth.Denial = fmt.Sprintf("outside the %d-day return window", demoReturnPolicy.PeriodDays)
		return auth, nil
	}
	auth.Authorized = true
	auth.RMANumber = "RMA-" + orderID
	fee := 0.0
	if !freeReturnReason(reason) {
		fee = demoReturnPolicy.RestockingFee * o.Price
	}
	auth.RestockingFee = fee
	auth.RefundAmount = o.Price - fee
	auth.NextSteps = demoReturnPolicy.Process
	return auth, nil
}

func freeReturnReason(reason string) bool {
	for _, r := range demoReturnPolicy.FreeReturnReasons {
		if r == reason {
			return true
		}
	}
	return false
}

func warrantyCoverage(term string) []string {
	switch term {
	case "1 year":
		return demoWarrantyPolicy.Coverage["1_year"]
	case "2 years":
		return demoWarrantyPolicy.Coverage["2_year"]
	case "3 years":
		return demoWarrantyPolicy.Coverage["3_year"]
	}
	return nil
}

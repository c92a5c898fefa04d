package specialist

import (
	"context"
	"fmt"
	"strings"

	contractx "github.com/watcharap/Careline-Multi-Agent-Customer-Care/agent/contract"
	toolx "github.com/watcharap/Careline-Multi-Agent-Customer-Care/agent/tool"
)

// orderSpecialist answers order questions entirely from the order book. It
// never calls the generator: order data is already structured and precise,
// and paraphrasing it adds latency without adding accuracy.
type orderSpecialist struct {
	base
	orders *toolx.OrderBook
}

func newOrderSpecialist(orders *toolx.OrderBook) *orderSpecialist {
	return &orderSpecialist{
		base: base{
			capability: contractx.CapabilityOrder,
			apology: "I apologize, but I'm having trouble accessing order information right now. " +
				"Please provide your order number and I'll help you as soon as possible.",
			apologyConf: 0.3,
		},
		orders: orders,
	}
}

func (s *orderSpecialist) Handle(ctx context.Context, message string, snapshot contractx.ContextSnapshot) (contractx.HandlerResult, error) {
	return s.guard(ctx, func() contractx.HandlerResult {
		return s.process(message, snapshot)
	})
}

func (s *orderSpecialist) process(message string, snapshot contractx.ContextSnapshot) contractx.HandlerResult {
	orderID := orderIDFrom(message, snapshot)
	if orderID == "" {
		return contractx.HandlerResult{
			Capability: s.capability,
			Response: "I can help you with your order, but I couldn't find an order number " +
				"in your message. Please share your order ID (for example: order #12345).",
			Confidence: 0.4,
		}
	}

	info, err := s.orders.Lookup(orderID)
	if err != nil {
		return contractx.HandlerResult{
			Capability: s.capability,
			Response: fmt.Sprintf("I checked our records, but I couldn't find any order with ID #%s. "+
				"Please confirm the number or share more details.", orderID),
			Confidence: 0.5,
		}
	}

	toolsUsed := []string{toolx.ToolOrderLookup}
	toolResults := []contractx.ToolResult{{Tool: toolx.ToolOrderLookup, Result: info}}

	lines := []string{
		fmt.Sprintf("Here are the details for order #%s:", orderID),
		fmt.Sprintf("- Customer: %s", info.Customer),
		fmt.Sprintf("- Product: %s ($%.2f)", info.Product, info.Price),
		fmt.Sprintf("- Status: %s", capitalize(info.Status)),
		fmt.Sprintf("- Ordered on: %s", info.OrderDate),
		fmt.Sprintf("- Delivery date: %s", info.DeliveryDate),
		fmt.Sprintf("- Warranty: %s (valid until %s)", info.Warranty, info.WarrantyExpires),
	}

	lower := strings.ToLower(message)

	if strings.Contains(lower, "warranty") {
		if w, err := s.orders.WarrantyStatus(orderID); err == nil {
			toolsUsed = append(toolsUsed, toolx.ToolWarrantyCheck)
			toolResults = append(toolResults, contractx.ToolResult{Tool: toolx.ToolWarrantyCheck, Result: w})
			lines = append(lines, "", "Warranty details:")
			if w.Active {
				lines = append(lines, fmt.Sprintf("- Warranty status: active, %d days remaining", w.DaysRemaining))
			} else {
				lines = append(lines, "- Warranty status: expired")
			}
			if len(w.Coverage) > 0 {
				lines = append(lines, fmt.Sprintf("- Coverage: %s", strings.Join(w.Coverage, ", ")))
			}
		}
	}

	if containsAny(lower, "track", "shipping", "delivery", "where is") {
		if t, err := s.orders.Track(orderID); err == nil {
			toolsUsed = append(toolsUsed, toolx.ToolShipmentTracking)
			toolResults = append(toolResults, contractx.ToolResult{Tool: toolx.ToolShipmentTracking, Result: t})
			lines = append(lines, "", "Shipping / Tracking:")
			lines = append(lines, fmt.Sprintf("- Shipment status: %s", t.Status))
			if t.EstimatedDelivery != "" {
				lines = append(lines, fmt.Sprintf("- Expected delivery: %s", t.EstimatedDelivery))
			}
			lines = append(lines,
				fmt.Sprintf("- Carrier: %s", t.Carrier),
				fmt.Sprintf("- Tracking number: %s", t.TrackingNumber),
			)
		}
	}

	if containsAny(lower, "return", "exchange", "refund") {
		reason := returnReason(message)
		if r, err := s.orders.InitiateReturn(orderID, reason); err == nil {
			toolsUsed = append(toolsUsed, toolx.ToolReturnProcessing)
			toolResults = append(toolResults, contractx.ToolResult{Tool: toolx.ToolReturnProcessing, Result: r})
			lines = append(lines, "", "Return / Exchange:")
			if r.Authorized {
				lines = append(lines,
					fmt.Sprintf("- Return authorized, RMA number: %s", r.RMANumber),
					fmt.Sprintf("- Reason recorded: %s", r.Reason),
					fmt.Sprintf("- Refund amount: $%.2f (restocking fee $%.2f)", r.RefundAmount, r.RestockingFee),
					fmt.Sprintf("- Next steps: %s", strings.Join(r.NextSteps, "; ")),
				)
			} else {
				lines = append(lines, fmt.Sprintf("- Return could not be authorized: %s", r.Denial))
			}
		}
	}

	return contractx.HandlerResult{
		Capability:  s.capability,
		Response:    strings.Join(lines, "\n"),
		ToolsUsed:   toolsUsed,
		ToolResults: toolResults,
		Confidence:  0.9,
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

package specialist

import (
	"context"
	"fmt"
	"strings"

	contractx "github.com/watcharap/Careline-Multi-Agent-Customer-Care/agent/contract"
	toolx "github.com/watcharap/Careline-Multi-Agent-Customer-Care/agent/tool"
)

// solutionsSpecialist resolves dissatisfaction: returns, exchanges,
// compensation, warranty claims, and general escalations. It leans on both
// policy knowledge and the order book.
type solutionsSpecialist struct {
	base
	knowledge *toolx.KnowledgeBase
	orders    *toolx.OrderBook
}

func newSolutionsSpecialist(knowledge *toolx.KnowledgeBase, orders *toolx.OrderBook, generator contractx.Generator, systemPrompt string) *solutionsSpecialist {
	return &solutionsSpecialist{
		base: base{
			capability:   contractx.CapabilitySolutions,
			systemPrompt: systemPrompt,
			generator:    generator,
			apology: "I understand you need help resolving an issue. I'm here to find the best solution " +
				"for your situation. Could you please provide more details about what happened?",
			apologyConf: 0.4,
		},
		knowledge: knowledge,
		orders:    orders,
	}
}

func (s *solutionsSpecialist) Handle(ctx context.Context, message string, snapshot contractx.ContextSnapshot) (contractx.HandlerResult, error) {
	return s.guard(ctx, func() contractx.HandlerResult {
		return s.process(ctx, message, snapshot)
	})
}

// compensationOffer is the deterministic goodwill table, keyed by perceived
// severity of the complaint.
type compensationOffer struct {
	Severity    string  `json:"severity"`
	Type        string  `json:"type"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
}

var compensationOffers = map[string]compensationOffer{
	"low":    {Severity: "low", Type: "store_credit", Amount: 25, Description: "Store credit for inconvenience"},
	"medium": {Severity: "medium", Type: "partial_refund", Amount: 50, Description: "Partial refund or significant store credit"},
	"high":   {Severity: "high", Type: "full_refund_plus", Amount: 100, Description: "Full refund plus additional compensation"},
}

// resolutionPlaybook maps general issue classes to scripted options.
var resolutionPlaybook = map[string][]string{
	"delivery_delay": {
		"Expedite remaining shipment at no cost",
		"Provide tracking updates every 24 hours",
		"Offer store credit for inconvenience",
	},
	"product_quality": {
		"Full replacement with expedited shipping",
		"Partial refund while keeping product",
		"Upgrade to higher-tier product at same price",
	},
	"billing_issue": {
		"Correct billing and issue credit",
		"Waive any late fees or penalties",
		"Provide detailed billing explanation",
	},
	"service_issue": {
		"Escalate to management for review",
		"Provide direct contact for future issues",
		"Offer goodwill gesture for poor experience",
	},
}

func (s *solutionsSpecialist) process(ctx context.Context, message string, snapshot contractx.ContextSnapshot) contractx.HandlerResult {
	var (
		toolsUsed   []string
		toolResults []contractx.ToolResult
		draft       string
	)
	orderID := orderIDFrom(message, snapshot)

	switch solutionType(message) {
	case "return":
		policy := s.knowledge.ReturnPolicy()
		toolsUsed = append(toolsUsed, toolx.ToolReturnPolicy)
		toolResults = append(toolResults, contractx.ToolResult{Tool: toolx.ToolReturnPolicy, Result: policy})

		reason := returnReason(message)
		var auth *toolx.ReturnAuthorization
		if orderID != "" {
			if r, err := s.orders.InitiateReturn(orderID, reason); err == nil {
				auth = &r
				toolsUsed = append(toolsUsed, toolx.ToolReturnProcessing)
				toolResults = append(toolResults, contractx.ToolResult{Tool: toolx.ToolReturnProcessing, Result: r})
			}
		}
		draft = draftReturn(policy, reason, auth)

	case "exchange":
		policy := s.knowledge.ExchangePolicy()
		toolsUsed = append(toolsUsed, toolx.ToolExchangePolicy)
		toolResults = append(toolResults, contractx.ToolResult{Tool: toolx.ToolExchangePolicy, Result: policy})

		if orderID != "" {
			if info, err := s.orders.Lookup(orderID); err == nil {
				toolsUsed = append(toolsUsed, toolx.ToolOrderLookup)
				toolResults = append(toolResults, contractx.ToolResult{Tool: toolx.ToolOrderLookup, Result: info})
			}
		}
		draft = draftExchange(policy)

	case "compensation":
		offer := compensationOffers[issueSeverity(message)]
		toolsUsed = append(toolsUsed, toolx.ToolCompensation)
		toolResults = append(toolResults, contractx.ToolResult{Tool: toolx.ToolCompensation, Result: offer})
		draft = draftCompensation(offer)

	case "warranty_claim":
		policy := s.knowledge.WarrantyPolicy()
		tier := warrantyTier(message)
		coverage := policy.Coverage[tier]
		toolsUsed = append(toolsUsed, toolx.ToolWarrantyPolicy)
		toolResults = append(toolResults, contractx.ToolResult{
			Tool:   toolx.ToolWarrantyPolicy,
			Result: map[string]any{"tier": tier, "coverage": coverage, "exclusions": policy.Exclusions},
		})

		var status *toolx.WarrantyInfo
		if orderID != "" {
			if w, err := s.orders.WarrantyStatus(orderID); err == nil {
				status = &w
				toolsUsed = append(toolsUsed, toolx.ToolWarrantyCheck)
				toolResults = append(toolResults, contractx.ToolResult{Tool: toolx.ToolWarrantyCheck, Result: w})
			}
		}
		draft = draftWarrantyClaim(coverage, policy.Process, status)

	default:
		issue := resolutionIssueType(message)
		options := resolutionPlaybook[issue]
		toolsUsed = append(toolsUsed, toolx.ToolResolutionPlan)
		toolResults = append(toolResults, contractx.ToolResult{
			Tool:   toolx.ToolResolutionPlan,
			Result: map[string]any{"issue_type": issue, "options": options},
		})
		draft = draftResolution(issue, options)
	}

	return s.polish(ctx, message, snapshot, toolsUsed, toolResults, draft)
}

func draftReturn(policy toolx.ReturnPolicy, reason string, auth *toolx.ReturnAuthorization) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "I can help with that return. Our policy allows returns within %d days; %s.\n",
		policy.PeriodDays, strings.ToLower(policy.Condition[:1])+policy.Condition[1:])
	if auth != nil {
		if auth.Authorized {
			fmt.Fprintf(&sb, "\nYour return is authorized (RMA %s, reason: %s). ", auth.RMANumber, auth.Reason)
			if auth.RestockingFee > 0 {
				fmt.Fprintf(&sb, "A restocking fee of $%.2f applies; your refund will be $%.2f.\n", auth.RestockingFee, auth.RefundAmount)
			} else {
				fmt.Fprintf(&sb, "No restocking fee applies; your full refund will be $%.2f.\n", auth.RefundAmount)
			}
			fmt.Fprintf(&sb, "Next steps: %s.", strings.Join(auth.NextSteps, "; "))
		} else {
			fmt.Fprintf(&sb, "\nUnfortunately this order is %s, so I can't authorize the return automatically. "+
				"I can escalate this for a policy exception review if you'd like.", auth.Denial)
		}
	} else {
		fmt.Fprintf(&sb, "Recorded reason: %s. Share your order number and I'll start the return right away.", reason)
	}
	return sb.String()
}

func draftExchange(policy toolx.ExchangePolicy) string {
	return fmt.Sprintf("Exchanges are available within %d days for reasons like %s. A $%.0f exchange fee applies, "+
		"and exchanges must stay within the same product category (any price difference is settled at checkout). "+
		"Tell me which model you'd like instead and I'll check eligibility.",
		policy.PeriodDays, strings.Join(policy.EligibleReasons, ", "), policy.Fee)
}

func draftCompensation(offer compensationOffer) string {
	return fmt.Sprintf("I'm sorry about this experience. Based on what you've described, I can offer %s: %s ($%.0f). "+
		"If that doesn't feel right, I can escalate to a manager for additional options.",
		strings.ReplaceAll(offer.Type, "_", " "), offer.Description, offer.Amount)
}

func draftWarrantyClaim(coverage []string, process []string, status *toolx.WarrantyInfo) string {
	var sb strings.Builder
	if status != nil {
		if status.Active {
			fmt.Fprintf(&sb, "Good news: the warranty on your %s is active until %s (%d days remaining).\n",
				status.Product, status.Expires, status.DaysRemaining)
		} else {
			fmt.Fprintf(&sb, "The warranty on your %s expired on %s, but let's see what options remain.\n",
				status.Product, status.Expires)
		}
	}
	if len(coverage) > 0 {
		fmt.Fprintf(&sb, "This tier covers: %s.\n", strings.Join(coverage, ", "))
	}
	if len(process) > 0 {
		fmt.Fprintf(&sb, "To file the claim: %s.", strings.Join(process, "; "))
	}
	return sb.String()
}

func draftResolution(issue string, options []string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "I hear you, and I want to make this right. For a %s, here's what I can do:\n",
		strings.ReplaceAll(issue, "_", " "))
	for i, opt := range options {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, opt)
	}
	sb.WriteString("Let me know which option works best, or I can escalate to a manager.")
	return sb.String()
}

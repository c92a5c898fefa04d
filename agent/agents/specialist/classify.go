package specialist

import (
	"regexp"
	"strings"

	contractx "github.com/watcharap/Careline-Multi-Agent-Customer-Care/agent/contract"
)

// Keyword classification shared by the specialists. Rules are ordered; the
// first hit wins, so more specific phrases come before generic ones.

type keywordRule struct {
	tag      string
	keywords []string
}

func classify(message string, rules []keywordRule, fallback string) string {
	lower := strings.ToLower(message)
	for _, rule := range rules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.tag
			}
		}
	}
	return fallback
}

var orderIDPattern = regexp.MustCompile(`order\s*#?\s*(\d+)`)

// orderIDFrom pulls an order number from the message, falling back to the
// most recently discussed order in the session.
func orderIDFrom(message string, snapshot contractx.ContextSnapshot) string {
	if m := orderIDPattern.FindStringSubmatch(strings.ToLower(message)); m != nil {
		return m[1]
	}
	if n := len(snapshot.Orders); n > 0 {
		return snapshot.Orders[n-1]
	}
	return ""
}

var returnReasonRules = []keywordRule{
	{tag: "defective", keywords: []string{"defective", "broken", "not working", "doesn't work", "won't turn on", "faulty"}},
	{tag: "damaged_shipping", keywords: []string{"damaged", "broken in shipping", "arrived broken"}},
	{tag: "wrong_item", keywords: []string{"wrong", "incorrect", "not what i ordered"}},
	{tag: "size_issue", keywords: []string{"size", "too big", "too small", "doesn't fit"}},
	{tag: "performance_issue", keywords: []string{"slow", "performance", "not fast enough"}},
	{tag: "customer_preference", keywords: []string{"changed mind", "don't like", "don't need", "different color"}},
}

func returnReason(message string) string {
	return classify(message, returnReasonRules, "other")
}

var issueTopicRules = []keywordRule{
	{tag: "laptop_wont_turn_on", keywords: []string{"won't turn on", "not turning on", "power", "battery"}},
	{tag: "laptop_overheating", keywords: []string{"overheating", "hot", "heating"}},
	{tag: "slow_performance", keywords: []string{"slow", "performance", "lag", "freeze"}},
	{tag: "wifi_issues", keywords: []string{"wifi", "internet", "network", "connection"}},
	{tag: "screen_issues", keywords: []string{"screen", "display", "monitor"}},
}

// issueTopic maps a message to a knowledge base topic. Empty means no
// recognizable technical issue.
func issueTopic(message string) string {
	return classify(message, issueTopicRules, "")
}

// complexIssueKeywords flag problems the canned guides rarely cover; those
// earn an extra web search for supporting material.
var complexIssueKeywords = []string{
	"blue screen", "bsod", "kernel", "driver", "firmware",
	"boot", "startup", "crash", "error code", "specific error",
}

func isComplexIssue(message string) bool {
	lower := strings.ToLower(message)
	for _, kw := range complexIssueKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// deviceType names the device under discussion, defaulting to laptop.
func deviceType(message string, snapshot contractx.ContextSnapshot) string {
	lower := strings.ToLower(message)
	if strings.Contains(lower, "techbook") {
		return "techbook"
	}
	for _, w := range []string{"laptop", "computer", "notebook"} {
		if strings.Contains(lower, w) {
			return "laptop"
		}
	}
	for _, p := range snapshot.Products {
		if strings.Contains(strings.ToLower(p), "techbook") {
			return "techbook"
		}
	}
	return "laptop"
}

var productRequestRules = []keywordRule{
	{tag: "comparison", keywords: []string{"compare", "comparison", "vs", "versus", "difference"}},
	{tag: "alternatives", keywords: []string{"alternative", "similar", "other options", "different"}},
	{tag: "recommendations", keywords: []string{"recommend", "suggest", "best", "which should", "what should"}},
	{tag: "availability", keywords: []string{"available", "in stock", "inventory", "how many"}},
	{tag: "deals", keywords: []string{"deal", "sale", "discount", "promotion", "cheaper"}},
	{tag: "product_info", keywords: []string{"specs", "specification", "features", "details"}},
}

func productRequestType(message string) string {
	return classify(message, productRequestRules, "general_inquiry")
}

// productCategory names the catalog segment for deal searches.
func productCategory(message string) string {
	lower := strings.ToLower(message)
	switch {
	case containsAny(lower, "laptop", "computer", "notebook"):
		return "laptops"
	case strings.Contains(lower, "techbook"):
		return "techbook laptops"
	default:
		return "electronics"
	}
}

var solutionTypeRules = []keywordRule{
	{tag: "return", keywords: []string{"return", "send back", "give back"}},
	{tag: "exchange", keywords: []string{"exchange", "swap", "replace with"}},
	{tag: "compensation", keywords: []string{"refund", "money back", "compensation", "credit"}},
	{tag: "warranty_claim", keywords: []string{"warranty", "repair", "fix", "covered"}},
}

func solutionType(message string) string {
	return classify(message, solutionTypeRules, "general_resolution")
}

var severityRules = []keywordRule{
	{tag: "high", keywords: []string{"terrible", "awful", "horrible", "worst", "never again", "lawsuit"}},
	{tag: "medium", keywords: []string{"frustrated", "disappointed", "upset", "annoyed", "unacceptable"}},
}

func issueSeverity(message string) string {
	return classify(message, severityRules, "low")
}

var resolutionIssueRules = []keywordRule{
	{tag: "delivery_delay", keywords: []string{"delivery", "shipping", "late", "delayed"}},
	{tag: "product_quality", keywords: []string{"quality", "defective", "broken", "poor"}},
	{tag: "billing_issue", keywords: []string{"bill", "charge", "payment", "refund"}},
}

func resolutionIssueType(message string) string {
	return classify(message, resolutionIssueRules, "service_issue")
}

// warrantyTier guesses which coverage tier the customer is asking about.
func warrantyTier(message string) string {
	lower := strings.ToLower(message)
	switch {
	case strings.Contains(lower, "extended"):
		return "3_year"
	case strings.Contains(lower, "basic"):
		return "1_year"
	default:
		return "2_year"
	}
}

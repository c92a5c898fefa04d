package tool

import (
	contractx "github.com/watcharap/Careline-Multi-Agent-Customer-Care/agent/contract"
)

// Tool names as they appear in ToolsUsed lists and ToolResult records.
const (
	ToolOrderLookup      = "order_lookup"
	ToolShipmentTracking = "shipment_tracking"
	ToolWarrantyCheck    = "warranty_check"
	ToolReturnProcessing = "return_processing"
	ToolKnowledgeSearch  = "knowledge_search"
	ToolGuideLookup      = "guide_lookup"
	ToolWebSearch        = "web_search"
	ToolDealSearch       = "deal_search"
	ToolProductLookup    = "product_lookup"
	ToolComparison       = "product_comparison"
	ToolAlternatives     = "alternative_search"
	ToolInventoryCheck   = "inventory_check"
	ToolRecommendation   = "recommendation_engine"
	ToolReturnPolicy     = "return_policy_lookup"
	ToolExchangePolicy   = "exchange_policy_lookup"
	ToolWarrantyPolicy   = "warranty_policy_lookup"
	ToolCompensation     = "compensation_assessment"
	ToolResolutionPlan   = "resolution_planning"
)

// Tool groups as planned by the router. Plan steps name groups, not
// individual tools; handlers decide the concrete lookups at execution time.
const (
	GroupOrder     = "order_tools"
	GroupTracking  = "tracking"
	GroupKnowledge = "knowledge_tools"
	GroupSearch    = "search_tools"
	GroupProduct   = "product_tools"
)

var groupsByCapability = map[contractx.Capability][]string{
	contractx.CapabilityOrder:       {GroupOrder, GroupTracking},
	contractx.CapabilityTechSupport: {GroupKnowledge, GroupSearch},
	contractx.CapabilityProduct:     {GroupProduct, GroupSearch},
	contractx.CapabilitySolutions:   {GroupKnowledge, GroupOrder},
}

// GroupsFor returns the tool groups a capability may plan with.
func GroupsFor(cap contractx.Capability) []string {
	groups := groupsByCapability[cap]
	out := make([]string, len(groups))
	copy(out, groups)
	return out
}

// GroupAllowed reports whether a plan step may assign the group to the
// capability.
func GroupAllowed(cap contractx.Capability, group string) bool {
	for _, g := range groupsByCapability[cap] {
		if g == group {
			return true
		}
	}
	return false
}

package specialist

import (
	"context"
	"fmt"
	"strings"

	contractx "github.com/watcharap/Careline-Multi-Agent-Customer-Care/agent/contract"
	toolx "github.com/watcharap/Careline-Multi-Agent-Customer-Care/agent/tool"
)

// productSpecialist answers catalog questions: lookups, comparisons,
// alternatives, inventory, recommendations, and deal searches.
type productSpecialist struct {
	base
	catalog *toolx.ProductCatalog
	search  *toolx.SearchIndex
}

func newProductSpecialist(catalog *toolx.ProductCatalog, search *toolx.SearchIndex, generator contractx.Generator, systemPrompt string) *productSpecialist {
	return &productSpecialist{
		base: base{
			capability:   contractx.CapabilityProduct,
			systemPrompt: systemPrompt,
			generator:    generator,
			apology: "I'd be happy to help you with product information. Could you please tell me " +
				"which specific product you're interested in or what you're looking for?",
			apologyConf: 0.4,
		},
		catalog: catalog,
		search:  search,
	}
}

func (s *productSpecialist) Handle(ctx context.Context, message string, snapshot contractx.ContextSnapshot) (contractx.HandlerResult, error) {
	return s.guard(ctx, func() contractx.HandlerResult {
		return s.process(ctx, message, snapshot)
	})
}

func (s *productSpecialist) process(ctx context.Context, message string, snapshot contractx.ContextSnapshot) contractx.HandlerResult {
	var (
		toolsUsed   []string
		toolResults []contractx.ToolResult
		draft       string
	)

	mentioned := s.catalog.ResolveMentions(message)
	if len(mentioned) == 0 {
		// Fall back to products discussed earlier in the session.
		for _, p := range snapshot.Products {
			mentioned = append(mentioned, s.catalog.ResolveMentions(p)...)
		}
	}

	switch productRequestType(message) {
	case "comparison":
		if cmp, err := s.catalog.Compare(mentioned); err == nil {
			toolsUsed = append(toolsUsed, toolx.ToolComparison)
			toolResults = append(toolResults, contractx.ToolResult{Tool: toolx.ToolComparison, Result: cmp})
			draft = draftComparison(cmp)
		} else {
			draft = "I can compare models for you. Which two products should I put side by side? " +
				"For example: the TechBook Pro 15 and the TechBook Air 13."
		}

	case "alternatives":
		if len(mentioned) > 0 {
			if alts, err := s.catalog.Alternatives(mentioned[0]); err == nil {
				toolsUsed = append(toolsUsed, toolx.ToolAlternatives)
				toolResults = append(toolResults, contractx.ToolResult{Tool: toolx.ToolAlternatives, Result: alts})
				draft = draftAlternatives(mentioned[0], alts)
			}
		}

	case "availability":
		if len(mentioned) > 0 {
			if inv, err := s.catalog.Inventory(mentioned[0]); err == nil {
				toolsUsed = append(toolsUsed, toolx.ToolInventoryCheck)
				toolResults = append(toolResults, contractx.ToolResult{Tool: toolx.ToolInventoryCheck, Result: inv})
				draft = draftInventory(inv)
			}
		}

	case "deals":
		deals := s.search.FindDeals(productCategory(message))
		toolsUsed = append(toolsUsed, toolx.ToolDealSearch)
		toolResults = append(toolResults, contractx.ToolResult{Tool: toolx.ToolDealSearch, Result: deals})
		draft = draftDeals(deals)

	case "recommendations":
		recs := s.catalog.Recommend(message)
		toolsUsed = append(toolsUsed, toolx.ToolRecommendation)
		toolResults = append(toolResults, contractx.ToolResult{Tool: toolx.ToolRecommendation, Result: recs})
		draft = draftRecommendations(recs)

	case "product_info":
		if len(mentioned) > 0 {
			if info, err := s.catalog.Lookup(mentioned[0]); err == nil {
				toolsUsed = append(toolsUsed, toolx.ToolProductLookup)
				toolResults = append(toolResults, contractx.ToolResult{Tool: toolx.ToolProductLookup, Result: info})
				draft = draftProductInfo(info)
			}
		}
	}

	if draft == "" {
		if len(mentioned) > 0 {
			if info, err := s.catalog.Lookup(mentioned[0]); err == nil {
				toolsUsed = append(toolsUsed, toolx.ToolProductLookup)
				toolResults = append(toolResults, contractx.ToolResult{Tool: toolx.ToolProductLookup, Result: info})
				draft = draftProductInfo(info)
			}
		}
	}
	if draft == "" {
		draft = s.apology
	}

	return s.polish(ctx, message, snapshot, toolsUsed, toolResults, draft)
}

func draftProductInfo(info toolx.ProductInfo) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s at a glance ($%.2f, rated %.1f/5):\n", info.Name, info.Price, info.Rating)
	for _, key := range []string{"processor", "ram", "storage", "graphics", "display", "battery", "weight"} {
		if v, ok := info.Specs[key]; ok {
			fmt.Fprintf(&sb, "- %s: %s\n", key, v)
		}
	}
	if info.InStock {
		fmt.Fprintf(&sb, "It is in stock with a %s warranty.", info.WarrantyPeriod)
	} else {
		sb.WriteString("It is currently out of stock.")
	}
	return sb.String()
}

func draftComparison(cmp toolx.Comparison) string {
	var sb strings.Builder
	sb.WriteString("Here's how the models compare:\n")
	for _, p := range cmp.Products {
		fmt.Fprintf(&sb, "- %s: $%.2f, %s, %s, rated %.1f/5\n",
			p.Name, p.Price, p.Specs["processor"], p.Specs["ram"], p.Rating)
	}
	fmt.Fprintf(&sb, "\nBest value: %s. Best rated: %s. The price difference is $%.2f.",
		cmp.Highlights["best_value"], cmp.Highlights["best_rating"], cmp.PriceSpread)
	return sb.String()
}

func draftAlternatives(baseID string, alts []toolx.ProductInfo) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Alternatives to the %s worth a look:\n", baseID)
	limit := len(alts)
	if limit > 3 {
		limit = 3
	}
	for _, p := range alts[:limit] {
		fmt.Fprintf(&sb, "- %s: $%.2f, %s category, rated %.1f/5\n", p.Name, p.Price, p.Category, p.Rating)
	}
	return sb.String()
}

func draftInventory(inv toolx.InventoryStatus) string {
	switch {
	case !inv.InStock:
		return fmt.Sprintf("The %s is currently out of stock. I can suggest similar models that are available now.", inv.Name)
	case inv.LowStock:
		return fmt.Sprintf("The %s is in stock, but only %d units remain. If you're interested, I'd recommend ordering soon.", inv.Name, inv.Inventory)
	default:
		return fmt.Sprintf("Good news: the %s is in stock (%d units available).", inv.Name, inv.Inventory)
	}
}

func draftDeals(deals []toolx.SearchResult) string {
	if len(deals) == 0 {
		return "I couldn't find any active promotions right now, but new deals are posted regularly."
	}
	var sb strings.Builder
	sb.WriteString("Here's what's on offer right now:\n")
	for _, d := range deals {
		fmt.Fprintf(&sb, "- %s: %s\n", d.Title, d.Content)
	}
	return sb.String()
}

func draftRecommendations(recs []toolx.ProductInfo) string {
	if len(recs) == 0 {
		return "Tell me a bit about how you'll use the laptop and your budget, and I'll recommend the best fit."
	}
	var sb strings.Builder
	sb.WriteString("Based on what you've described, I'd recommend:\n")
	limit := len(recs)
	if limit > 2 {
		limit = 2
	}
	for i, p := range recs[:limit] {
		fmt.Fprintf(&sb, "%d. %s: $%.2f, %s, %s (%s category)\n",
			i+1, p.Name, p.Price, p.Specs["processor"], p.Specs["ram"], p.Category)
	}
	return sb.String()
}

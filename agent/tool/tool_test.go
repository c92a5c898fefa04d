package tool

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func fixedClock(date string) func() time.Time {
	t, err := time.Parse(dateLayout, date)
	if err != nil {
		panic(err)
	}
	return func() time.Time { return t }
}

func TestOrderLookupDerivesEligibility(t *testing.T) {
	t.Parallel()

	// Ten days after delivery of order 12345: inside return window, warranty live.
	book := NewOrderBookAt(fixedClock("2024-02-09"))

	info, err := book.Lookup("12345")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if info.Customer != "Sarah Miller" {
		t.Fatalf("customer = %q", info.Customer)
	}
	if info.DaysSinceDelivery != 10 {
		t.Fatalf("days since delivery = %d, want 10", info.DaysSinceDelivery)
	}
	if !info.ReturnEligible {
		t.Fatal("expected order inside return window")
	}
	if !info.WarrantyActive {
		t.Fatal("expected active warranty")
	}
}

func TestOrderLookupOutsideReturnWindow(t *testing.T) {
	t.Parallel()

	book := NewOrderBookAt(fixedClock("2024-06-01"))

	info, err := book.Lookup("12345")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if info.ReturnEligible {
		t.Fatal("expected return window to be closed")
	}
}

func TestOrderLookupUnknownID(t *testing.T) {
	t.Parallel()

	book := NewOrderBook()
	if _, err := book.Lookup("99999"); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("err = %v, want ErrOrderNotFound", err)
	}
}

func TestTrackShippedOrder(t *testing.T) {
	t.Parallel()

	book := NewOrderBook()
	tr, err := book.Track("12347")
	if err != nil {
		t.Fatalf("Track: %v", err)
	}
	if tr.Status != "shipped" {
		t.Fatalf("status = %q", tr.Status)
	}
	if tr.EstimatedDelivery == "" || tr.DeliveredOn != "" {
		t.Fatalf("shipped order should carry an estimate only: %+v", tr)
	}
}

func TestWarrantyStatusExpired(t *testing.T) {
	t.Parallel()

	book := NewOrderBookAt(fixedClock("2026-03-01"))
	w, err := book.WarrantyStatus("12346")
	if err != nil {
		t.Fatalf("WarrantyStatus: %v", err)
	}
	if w.Active {
		t.Fatal("1-year warranty from 2024 should be expired in 2026")
	}
	if len(w.Coverage) == 0 {
		t.Fatal("coverage table should still be reported")
	}
}

func TestInitiateReturnFeeWaiver(t *testing.T) {
	t.Parallel()

	book := NewOrderBookAt(fixedClock("2024-02-09"))

	defective, err := book.InitiateReturn("12345", "defective")
	if err != nil {
		t.Fatalf("InitiateReturn: %v", err)
	}
	if !defective.Authorized {
		t.Fatalf("expected authorization: %+v", defective)
	}
	if defective.RestockingFee != 0 {
		t.Fatalf("defective return should waive the fee, got %.2f", defective.RestockingFee)
	}

	remorse, err := book.InitiateReturn("12345", "changed_mind")
	if err != nil {
		t.Fatalf("InitiateReturn: %v", err)
	}
	if remorse.RestockingFee <= 0 {
		t.Fatal("non-defective return should carry a restocking fee")
	}
	if remorse.RefundAmount >= defective.RefundAmount {
		t.Fatal("fee should reduce the refund")
	}
}

func TestInitiateReturnDeniedOutsideWindow(t *testing.T) {
	t.Parallel()

	book := NewOrderBookAt(fixedClock("2024-06-01"))
	auth, err := book.InitiateReturn("12345", "defective")
	if err != nil {
		t.Fatalf("InitiateReturn: %v", err)
	}
	if auth.Authorized || auth.Denial == "" {
		t.Fatalf("expected denial with reason: %+v", auth)
	}
}

func TestCompareHighlights(t *testing.T) {
	t.Parallel()

	catalog := NewProductCatalog()
	cmp, err := catalog.Compare([]string{"TB-PRO-15", "TB-GAME-17"})
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if len(cmp.Products) != 2 {
		t.Fatalf("products = %d", len(cmp.Products))
	}
	if cmp.Highlights["best_value"] != "TechBook Pro 15" {
		t.Fatalf("best_value = %q", cmp.Highlights["best_value"])
	}
	if cmp.Highlights["best_rating"] != "TechBook Gaming 17" {
		t.Fatalf("best_rating = %q", cmp.Highlights["best_rating"])
	}
}

func TestCompareNeedsTwoKnownProducts(t *testing.T) {
	t.Parallel()

	catalog := NewProductCatalog()
	if _, err := catalog.Compare([]string{"TB-PRO-15", "NOPE"}); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("err = %v, want ErrProductNotFound", err)
	}
}

func TestAlternativesPrefersSameCategory(t *testing.T) {
	t.Parallel()

	catalog := NewProductCatalog()
	alts, err := catalog.Alternatives("TB-PRO-15")
	if err != nil {
		t.Fatalf("Alternatives: %v", err)
	}
	if len(alts) != 3 {
		t.Fatalf("alternatives = %d, want 3", len(alts))
	}
	for _, a := range alts {
		if a.ProductID == "TB-PRO-15" {
			t.Fatal("base product listed as its own alternative")
		}
	}
}

func TestRecommendGamingNeed(t *testing.T) {
	t.Parallel()

	catalog := NewProductCatalog()
	recs := catalog.Recommend("I need a laptop for gaming")
	if len(recs) == 0 || recs[0].ProductID != "TB-GAME-17" {
		t.Fatalf("top recommendation = %+v", recs)
	}
}

func TestResolveMentionsOrderAndDedup(t *testing.T) {
	t.Parallel()

	catalog := NewProductCatalog()
	ids := catalog.ResolveMentions("compare the TechBook Pro 15 with the Air 13, the pro 15 is pricier")
	if len(ids) != 2 || ids[0] != "TB-PRO-15" || ids[1] != "TB-AIR-13" {
		t.Fatalf("ids = %v", ids)
	}
}

func TestKnowledgeSearchRanksByHits(t *testing.T) {
	t.Parallel()

	kb := NewKnowledgeBase()
	guides := kb.Search("my laptop won't turn on, no power at all")
	if len(guides) == 0 || guides[0].Topic != "laptop_wont_turn_on" {
		t.Fatalf("guides = %+v", guides)
	}
}

func TestKnowledgeLookupUnknownTopic(t *testing.T) {
	t.Parallel()

	kb := NewKnowledgeBase()
	if _, err := kb.Lookup("nonsense"); !errors.Is(err, ErrTopicNotFound) {
		t.Fatalf("err = %v, want ErrTopicNotFound", err)
	}
}

func TestSearchWebMatchesIndexedTopic(t *testing.T) {
	t.Parallel()

	idx := NewSearchIndex()
	results := idx.SearchWeb("laptop repair power issue")
	if len(results) != 1 || results[0].Source != "TechSupport.com" {
		t.Fatalf("results = %+v", results)
	}
	if results[0].Relevance != 0.8 {
		t.Fatalf("relevance = %.2f", results[0].Relevance)
	}
}

func TestSearchWebFallsBackToGenericResult(t *testing.T) {
	t.Parallel()

	idx := NewSearchIndex()
	results := idx.SearchWeb("quantum flux capacitor")
	if len(results) != 1 || results[0].Relevance != 0.5 {
		t.Fatalf("results = %+v", results)
	}
	if !strings.Contains(results[0].Content, "quantum flux capacitor") {
		t.Fatalf("content = %q", results[0].Content)
	}
}

func TestFindDealsNamesCategory(t *testing.T) {
	t.Parallel()

	idx := NewSearchIndex()
	deals := idx.FindDeals("laptops")
	if len(deals) != 1 || deals[0].Title != "Current laptops Deals" {
		t.Fatalf("deals = %+v", deals)
	}
	if !strings.Contains(deals[0].Content, "15% off select laptops") {
		t.Fatalf("content = %q", deals[0].Content)
	}
}

func TestGroupAllowed(t *testing.T) {
	t.Parallel()

	if !GroupAllowed("order", GroupTracking) {
		t.Fatal("order capability should plan tracking")
	}
	if GroupAllowed("tech_support", GroupProduct) {
		t.Fatal("tech_support capability must not plan product tools")
	}
}

package tool

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var ErrProductNotFound = errors.New("product not found")

// ProductCatalog answers lookup, comparison, and recommendation questions
// against the demo product set.
type ProductCatalog struct{}

func NewProductCatalog() *ProductCatalog {
	return &ProductCatalog{}
}

type ProductInfo struct {
	ProductID string `json:"product_id"`
	Product
	InStock bool `json:"in_stock"`
}

type Comparison struct {
	Products    []ProductInfo     `json:"products"`
	PriceSpread float64           `json:"price_spread"`
	Highlights  map[string]string `json:"highlights"`
}

type InventoryStatus struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Inventory int    `json:"inventory"`
	InStock   bool   `json:"in_stock"`
	LowStock  bool   `json:"low_stock"`
}

// Lookup returns the product record for a catalog id.
func (c *ProductCatalog) Lookup(productID string) (ProductInfo, error) {
	p, ok := demoProducts[productID]
	if !ok {
		return ProductInfo{}, fmt.Errorf("%w: %s", ErrProductNotFound, productID)
	}
	return ProductInfo{ProductID: productID, Product: p, InStock: p.Inventory > 0}, nil
}

// Compare returns the given products side by side with per-axis winners.
// Unknown ids are skipped; at least two resolvable ids are required.
func (c *ProductCatalog) Compare(productIDs []string) (Comparison, error) {
	var infos []ProductInfo
	for _, id := range productIDs {
		if info, err := c.Lookup(id); err == nil {
			infos = append(infos, info)
		}
	}
	if len(infos) < 2 {
		return Comparison{}, fmt.Errorf("%w: comparison needs at least two known products", ErrProductNotFound)
	}
	cheapest, priciest, topRated := infos[0], infos[0], infos[0]
	for _, info := range infos[1:] {
		if info.Price < cheapest.Price {
			cheapest = info
		}
		if info.Price > priciest.Price {
			priciest = info
		}
		if info.Rating > topRated.Rating {
			topRated = info
		}
	}
	return Comparison{
		Products:    infos,
		PriceSpread: priciest.Price - cheapest.Price,
		Highlights: map[string]string{
			"best_value":  cheapest.Name,
			"best_rating": topRated.Name,
		},
	}, nil
}

// Alternatives suggests other catalog products, same-category entries first,
// then by rating.
func (c *ProductCatalog) Alternatives(productID string) ([]ProductInfo, error) {
	base, err := c.Lookup(productID)
	if err != nil {
		return nil, err
	}
	var alts []ProductInfo
	for id, p := range demoProducts {
		if id == productID {
			continue
		}
		alts = append(alts, ProductInfo{ProductID: id, Product: p, InStock: p.Inventory > 0})
	}
	sort.Slice(alts, func(i, j int) bool {
		si, sj := alts[i].Category == base.Category, alts[j].Category == base.Category
		if si != sj {
			return si
		}
		if alts[i].Rating != alts[j].Rating {
			return alts[i].Rating > alts[j].Rating
		}
		return alts[i].ProductID < alts[j].ProductID
	})
	return alts, nil
}

// Inventory reports stock level for a product. Fewer than 25 units counts as
// low stock.
func (c *ProductCatalog) Inventory(productID string) (InventoryStatus, error) {
	p, ok := demoProducts[productID]
	if !ok {
		return InventoryStatus{}, fmt.Errorf("%w: %s", ErrProductNotFound, productID)
	}
	return InventoryStatus{
		ProductID: productID,
		Name:      p.Name,
		Inventory: p.Inventory,
		InStock:   p.Inventory > 0,
		LowStock:  p.Inventory > 0 && p.Inventory < 25,
	}, nil
}

// Recommend scores the catalog against need keywords in the message and
// returns products in descending fit order.
func (c *ProductCatalog) Recommend(message string) []ProductInfo {
	lower := strings.ToLower(message)
	scores := map[string]int{}
	for id, p := range demoProducts {
		if strings.Contains(lower, p.Category) {
			scores[id] += 3
		}
	}
	for keyword, category := range needCategories {
		if !strings.Contains(lower, keyword) {
			continue
		}
		for id, p := range demoProducts {
			if p.Category == category {
				scores[id] += 2
			}
		}
	}
	ids := make([]string, 0, len(demoProducts))
	for id := range demoProducts {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if scores[ids[i]] != scores[ids[j]] {
			return scores[ids[i]] > scores[ids[j]]
		}
		if demoProducts[ids[i]].Rating != demoProducts[ids[j]].Rating {
			return demoProducts[ids[i]].Rating > demoProducts[ids[j]].Rating
		}
		return ids[i] < ids[j]
	})
	out := make([]ProductInfo, 0, len(ids))
	for _, id := range ids {
		p := demoProducts[id]
		out = append(out, ProductInfo{ProductID: id, Product: p, InStock: p.Inventory > 0})
	}
	return out
}

// ResolveMentions maps product names spoken in a message to catalog ids,
// preserving first-mention order.
func (c *ProductCatalog) ResolveMentions(message string) []string {
	lower := strings.ToLower(message)
	type hit struct {
		pos int
		id  string
	}
	var hits []hit
	seen := map[string]bool{}
	for alias, id := range productAliases {
		pos := strings.Index(lower, alias)
		if pos < 0 || seen[id] {
			continue
		}
		seen[id] = true
		hits = append(hits, hit{pos: pos, id: id})
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].pos < hits[j].pos })
	ids := make([]string, len(hits))
	for i, h := range hits {
		ids[i] = h.id
	}
	return ids
}

// needCategories maps expressed needs to catalog categories.
var needCategories = map[string]string{
	"gaming":      "gaming",
	"game":        "gaming",
	"work":        "professional",
	"business":    "professional",
	"programming": "professional",
	"travel":      "ultrabook",
	"portable":    "ultrabook",
	"light":       "ultrabook",
	"cheap":       "budget",
	"budget":      "budget",
	"student":     "budget",
}

// productAliases maps lowercase spoken names to catalog ids. Longer aliases
// are checked alongside shorter ones; ResolveMentions dedupes by id.
var productAliases = map[string]string{
	"techbook pro 15":    "TB-PRO-15",
	"pro 15":             "TB-PRO-15",
	"tb-pro-15":          "TB-PRO-15",
	"techbook air 13":    "TB-AIR-13",
	"air 13":             "TB-AIR-13",
	"tb-air-13":          "TB-AIR-13",
	"techbook gaming 17": "TB-GAME-17",
	"gaming 17":          "TB-GAME-17",
	"tb-game-17":         "TB-GAME-17",
	"techbook basic 14":  "TB-BASIC-14",
	"basic 14":           "TB-BASIC-14",
	"tb-basic-14":        "TB-BASIC-14",
}

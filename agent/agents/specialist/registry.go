package specialist

import (
	contractx "github.com/watcharap/Careline-Multi-Agent-Customer-Care/agent/contract"
	promptx "github.com/watcharap/Careline-Multi-Agent-Customer-Care/agent/prompt"
	toolx "github.com/watcharap/Careline-Multi-Agent-Customer-Care/agent/tool"
)

type registryImpl struct {
	handlers map[contractx.Capability]contractx.Handler
}

func (r *registryImpl) Handler(cap contractx.Capability) (contractx.Handler, bool) {
	h, ok := r.handlers[cap]
	return h, ok
}

func (r *registryImpl) Capabilities() []contractx.Capability {
	caps := make([]contractx.Capability, 0, len(r.handlers))
	for _, c := range contractx.AllCapabilities() {
		if _, ok := r.handlers[c]; ok {
			caps = append(caps, c)
		}
	}
	return caps
}

// NewRegistry wires the four specialists over shared tool instances. The
// generator may be nil, in which case every specialist ships its
// deterministic draft.
func NewRegistry(generator contractx.Generator) contractx.Registry {
	prompts := promptx.LoadPromptSet()
	orders := toolx.NewOrderBook()
	catalog := toolx.NewProductCatalog()
	knowledge := toolx.NewKnowledgeBase()
	search := toolx.NewSearchIndex()

	return &registryImpl{
		handlers: map[contractx.Capability]contractx.Handler{
			contractx.CapabilityOrder:       newOrderSpecialist(orders),
			contractx.CapabilityTechSupport: newTechSupportSpecialist(knowledge, search, generator, prompts.TechSupport),
			contractx.CapabilityProduct:     newProductSpecialist(catalog, search, generator, prompts.Product),
			contractx.CapabilitySolutions:   newSolutionsSpecialist(knowledge, orders, generator, prompts.Solutions),
		},
	}
}

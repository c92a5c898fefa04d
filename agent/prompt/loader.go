package prompt

import (
	_ "embed"
	"strings"
)

var (
	//go:embed template/tech_support.txt
	techSupportRaw string

	//go:embed template/product.txt
	productRaw string

	//go:embed template/solutions.txt
	solutionsRaw string

	//go:embed template/synthesis.txt
	synthesisRaw string
)

// PromptSet holds the system prompts for the generative specialists and the
// synthesis step. The order specialist is fully deterministic and has none.
type PromptSet struct {
	TechSupport string
	Product     string
	Solutions   string
	Synthesis   string
}

// LoadPromptSet returns the embedded prompts, trimmed.
func LoadPromptSet() PromptSet {
	return PromptSet{
		TechSupport: strings.TrimSpace(techSupportRaw),
		Product:     strings.TrimSpace(productRaw),
		Solutions:   strings.TrimSpace(solutionsRaw),
		Synthesis:   strings.TrimSpace(synthesisRaw),
	}
}

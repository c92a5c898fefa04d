package session

import (
	"regexp"
	"strings"
	"time"

	contractx "github.com/watcharap/Careline-Multi-Agent-Customer-Care/agent/contract"
)

// Message is one stored conversation entry. Assistant messages carry the
// routing metadata produced while answering.
type Message struct {
	Role       contractx.Role         `json:"role"`
	Content    string                 `json:"content"`
	Timestamp  time.Time              `json:"timestamp"`
	AgentsUsed []string               `json:"agents_used,omitempty"`
	ToolsUsed  []string               `json:"tools_used,omitempty"`
	Plan       *contractx.PlanSummary `json:"plan,omitempty"`
}

// Facts are the durable entities extracted from user messages over the life
// of a session. Slices hold unique values in first-seen order.
type Facts struct {
	Orders      []string       `json:"orders,omitempty"`
	Products    []string       `json:"products,omitempty"`
	Issues      []string       `json:"issues,omitempty"`
	Preferences map[string]any `json:"preferences,omitempty"`
}

// Session is one conversation's accumulated state. Access is mediated by the
// Store; Session itself is not safe for concurrent use.
type Session struct {
	ID         string    `json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	LastActive time.Time `json:"last_active"`
	Messages   []Message `json:"messages"`
	Facts      Facts     `json:"facts"`
}

/* ----------------------------- Fact extraction ---------------------------- */

var orderNumberPattern = regexp.MustCompile(`order\s*#?\s*(\d+)`)

// issueSignals are recognized problem phrases, matched as substrings of the
// lowercased message.
var issueSignals = []string{
	"won't turn on",
	"not turning on",
	"overheating",
	"slow",
	"wifi",
	"screen",
	"display",
	"battery",
	"charging",
	"keyboard",
	"trackpad",
}

var productSignals = []string{
	"techbook",
	"laptop",
	"computer",
	"pro 15",
	"air 13",
	"gaming 17",
}

// ExtractFacts pulls order numbers, product mentions, and issue phrases out
// of one user message. Pure function; dedup happens when facts are absorbed.
func ExtractFacts(message string) Facts {
	lower := strings.ToLower(message)

	var f Facts
	for _, m := range orderNumberPattern.FindAllStringSubmatch(lower, -1) {
		f.Orders = append(f.Orders, m[1])
	}
	for _, signal := range issueSignals {
		if strings.Contains(lower, signal) {
			f.Issues = append(f.Issues, signal)
		}
	}
	for _, signal := range productSignals {
		if strings.Contains(lower, signal) {
			f.Products = append(f.Products, signal)
		}
	}
	return f
}

// absorb merges newly extracted facts into the session, keeping slices
// unique. Re-stating a known fact is a no-op.
func (s *Session) absorb(f Facts) {
	s.Facts.Orders = appendUnique(s.Facts.Orders, f.Orders)
	s.Facts.Products = appendUnique(s.Facts.Products, f.Products)
	s.Facts.Issues = appendUnique(s.Facts.Issues, f.Issues)
	for k, v := range f.Preferences {
		if s.Facts.Preferences == nil {
			s.Facts.Preferences = make(map[string]any, 4)
		}
		s.Facts.Preferences[k] = v
	}
}

func appendUnique(dst, src []string) []string {
	for _, v := range src {
		found := false
		for _, existing := range dst {
			if existing == v {
				found = true
				break
			}
		}
		if !found {
			dst = append(dst, v)
		}
	}
	return dst
}

// snapshot builds the read-only view handed to planner and handlers: the
// accumulated facts plus the most recent turns.
func (s *Session) snapshot(recentLimit int) contractx.ContextSnapshot {
	snap := contractx.ContextSnapshot{
		SessionID: s.ID,
		TurnCount: len(s.Messages),
	}
	snap.Orders = append(snap.Orders, s.Facts.Orders...)
	snap.Products = append(snap.Products, s.Facts.Products...)
	snap.Issues = append(snap.Issues, s.Facts.Issues...)
	if len(s.Facts.Preferences) > 0 {
		snap.Preferences = make(map[string]any, len(s.Facts.Preferences))
		for k, v := range s.Facts.Preferences {
			snap.Preferences[k] = v
		}
	}

	start := len(s.Messages) - recentLimit
	if start < 0 {
		start = 0
	}
	for _, m := range s.Messages[start:] {
		snap.RecentTurns = append(snap.RecentTurns, contractx.Turn{
			Role:    m.Role,
			Content: m.Content,
		})
	}
	return snap
}

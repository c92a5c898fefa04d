package tool

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var ErrTopicNotFound = errors.New("knowledge topic not found")

// KnowledgeBase answers troubleshooting and policy questions against the demo
// knowledge set.
type KnowledgeBase struct{}

func NewKnowledgeBase() *KnowledgeBase {
	return &KnowledgeBase{}
}

type Guide struct {
	Topic string   `json:"topic"`
	Steps []string `json:"steps"`
}

// topicSignals maps message keywords to knowledge topics. Order within a
// slice does not matter; Search scores by hit count.
var topicSignals = map[string][]string{
	"laptop_wont_turn_on": {"won't turn on", "wont turn on", "not turning on", "won't start", "dead", "no power", "won't boot"},
	"laptop_overheating":  {"overheating", "too hot", "hot", "fan loud", "thermal"},
	"slow_performance":    {"slow", "sluggish", "lagging", "freezing", "performance"},
	"wifi_issues":         {"wifi", "wi-fi", "wireless", "internet", "network", "connection"},
	"screen_issues":       {"screen", "display", "flickering", "black screen", "monitor"},
}

// Search returns the guides whose signals appear in the message, best match
// first.
func (k *KnowledgeBase) Search(message string) []Guide {
	lower := strings.ToLower(message)
	scores := map[string]int{}
	for topic, signals := range topicSignals {
		for _, s := range signals {
			if strings.Contains(lower, s) {
				scores[topic]++
			}
		}
	}
	topics := make([]string, 0, len(scores))
	for topic := range scores {
		topics = append(topics, topic)
	}
	sort.Slice(topics, func(i, j int) bool {
		if scores[topics[i]] != scores[topics[j]] {
			return scores[topics[i]] > scores[topics[j]]
		}
		return topics[i] < topics[j]
	})
	guides := make([]Guide, len(topics))
	for i, topic := range topics {
		guides[i] = Guide{Topic: topic, Steps: demoKnowledgeBase[topic]}
	}
	return guides
}

// Lookup returns the guide for an exact topic key.
func (k *KnowledgeBase) Lookup(topic string) (Guide, error) {
	steps, ok := demoKnowledgeBase[topic]
	if !ok {
		return Guide{}, fmt.Errorf("%w: %s", ErrTopicNotFound, topic)
	}
	return Guide{Topic: topic, Steps: steps}, nil
}

func (k *KnowledgeBase) ReturnPolicy() ReturnPolicy {
	return demoReturnPolicy
}

func (k *KnowledgeBase) WarrantyPolicy() WarrantyPolicy {
	return demoWarrantyPolicy
}

func (k *KnowledgeBase) ExchangePolicy() ExchangePolicy {
	return demoExchangePolicy
}

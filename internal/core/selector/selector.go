// Package selector picks the next message to display.
package selector

import (
	"bloomlet/internal/core/catalog"
	"bloomlet/internal/core/model"
	"bloomlet/internal/core/random"
)

// PreferenceSource exposes the current preferences.
type PreferenceSource interface {
	Current() model.Preferences
}

// Selector chooses messages from a catalog according to the enabled categories.
type Selector struct {
	catalog *catalog.Catalog
	prefs   PreferenceSource
	rng     random.Source
}

// New creates a Selector.
func New(messages *catalog.Catalog, prefs PreferenceSource, rng random.Source) *Selector {
	if messages == nil {
		messages = catalog.Empty()
	}
	if rng == nil {
		rng = random.New()
	}
	return &Selector{catalog: messages, prefs: prefs, rng: rng}
}

// Select returns a message, preferring the given category when it has matches.
// An empty preferred category means no preference. The boolean is false only
// when the catalog is empty.
func (selector *Selector) Select(preferred model.Category) (model.Message, bool) {
	enabled := selector.prefs.Current().EnabledCategories()
	candidates := selector.catalog.Filter(func(message model.Message) bool {
		return enabled[message.Category]
	})
	if len(candidates) == 0 {
		candidates = selector.catalog.Messages()
	}
	return Pick(candidates, preferred, selector.rng)
}

// Pick chooses uniformly among the candidates of the preferred category if any
// exist, otherwise among all candidates.
func Pick(candidates []model.Message, preferred model.Category, rng random.Source) (model.Message, bool) {
	if len(candidates) == 0 {
		return model.Message{}, false
	}
	if preferred != "" {
		var subset []model.Message
		for _, message := range candidates {
			if message.Category == preferred {
				subset = append(subset, message)
			}
		}
		if len(subset) > 0 {
			return subset[rng.Intn(len(subset))], true
		}
	}
	return candidates[rng.Intn(len(candidates))], true
}

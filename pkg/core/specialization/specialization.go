package specialization

import (
	"sort"
	"strings"
	"unicode"
)

// Category is a canonical work-type label (e.g. "Plumbing", "HVAC")
type Category string

// Canonical categories
const (
	Electrical         Category = "Electrical"
	Plumbing           Category = "Plumbing"
	HVAC               Category = "HVAC"
	Painting           Category = "Painting"
	Carpentry          Category = "Carpentry"
	ApplianceRepair    Category = "Appliance Repair"
	GeneralMaintenance Category = "General Maintenance"
)

// defaultAliases maps each canonical category to the role-style and work-style terms that
// refer to it. The category name itself is always an alias of itself.
var defaultAliases = map[Category][]string{
	Electrical:         {"Electrician"},
	Plumbing:           {"Plumber"},
	HVAC:               {"HVAC Technician", "Heating", "Cooling"},
	Painting:           {"Painter"},
	Carpentry:          {"Carpenter"},
	ApplianceRepair:    {"Appliance Technician"},
	GeneralMaintenance: {"Maintenance"},
}

// Normalizer maps free-text specializations to canonical categories.
// A Normalizer is immutable after construction and safe for concurrent use.
type Normalizer struct {
	// lookup is keyed by the normalized alias (lower case, single-spaced)
	lookup map[string]Category

	// phrases are the tokenized aliases, longest first, used by Infer
	phrases []aliasPhrase
}

type aliasPhrase struct {
	tokens   []string
	category Category
}

// NewNormalizer builds a Normalizer from the built-in alias table plus any extra aliases.
// Extra aliases may introduce new categories or extend existing ones.
func NewNormalizer(extra map[Category][]string) *Normalizer {
	n := &Normalizer{lookup: make(map[string]Category)}

	for category, aliases := range defaultAliases {
		n.add(category, aliases)
	}
	builtin := make(map[string]Category, len(defaultAliases))
	for category := range defaultAliases {
		builtin[normalize(string(category))] = category
	}
	for category, aliases := range extra {
		// "general maintenance" in config extends GeneralMaintenance rather than shadowing it
		if known, ok := builtin[normalize(string(category))]; ok {
			category = known
		}
		n.add(category, aliases)
	}

	for key, category := range n.lookup {
		tokens := tokenize(key)
		if len(tokens) == 0 {
			continue
		}
		n.phrases = append(n.phrases, aliasPhrase{tokens: tokens, category: category})
	}
	// Longest alias first, ties broken alphabetically so Infer is deterministic
	sort.Slice(n.phrases, func(i, j int) bool {
		if len(n.phrases[i].tokens) != len(n.phrases[j].tokens) {
			return len(n.phrases[i].tokens) > len(n.phrases[j].tokens)
		}
		return strings.Join(n.phrases[i].tokens, " ") < strings.Join(n.phrases[j].tokens, " ")
	})

	return n
}

// Default returns a Normalizer with only the built-in aliases
func Default() *Normalizer {
	return NewNormalizer(nil)
}

func (n *Normalizer) add(category Category, aliases []string) {
	n.lookup[normalize(string(category))] = category
	for _, alias := range aliases {
		key := normalize(alias)
		if key == "" {
			continue
		}
		n.lookup[key] = category
	}
}

// Canonicalize maps text to its canonical category.
// Unknown text is returned trimmed as its own category.
func (n *Normalizer) Canonicalize(text string) Category {
	if category, ok := n.lookup[normalize(text)]; ok {
		return category
	}
	return Category(strings.TrimSpace(text))
}

// IsCompatible reports whether a worker with the given specialization can take work
// requiring the given specialization. Both arguments may be free text.
//
// General Maintenance workers can take any work, and an empty requirement matches anyone.
func (n *Normalizer) IsCompatible(worker, required string) bool {
	if normalize(required) == "" {
		return true
	}

	workerCategory := n.Canonicalize(worker)
	if workerCategory == GeneralMaintenance {
		return true
	}

	return strings.EqualFold(string(workerCategory), string(n.Canonicalize(required)))
}

// Infer finds the category referred to by a free-text description such as
// "kitchen sink is leaking, need a plumber". Aliases only match on whole words, so
// "repair" never matches "air". Returns false when nothing matches.
func (n *Normalizer) Infer(text string) (Category, bool) {
	words := tokenize(text)
	if len(words) == 0 {
		return "", false
	}

	for _, phrase := range n.phrases {
		if containsSequence(words, phrase.tokens) {
			return phrase.category, true
		}
	}
	return "", false
}

// normalize lower-cases text and collapses internal whitespace
func normalize(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}

// tokenize splits text into lower-case words, dropping punctuation
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func containsSequence(words, seq []string) bool {
	if len(seq) == 0 || len(seq) > len(words) {
		return false
	}
	for i := 0; i+len(seq) <= len(words); i++ {
		match := true
		for j, token := range seq {
			if words[i+j] != token {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

package app

import (
	"strings"

	"github.com/saikatmaity13/vibemap/internal/domain"
)

// similarityFloor is the minimum anchor similarity for a classification;
// scores at or below it fall through to the generic reply.
const similarityFloor = 0.55

const fallbackReply = "I'm mostly a map bot! Try clicking the buttons."

// anchors are compared against user input in this fixed order; on a
// score tie the first-seen category wins.
var anchors = []struct {
	vibe   string
	phrase string
}{
	{"active", "workout gym fitness"},
	{"foodie", "hungry food eat"},
	{"nature", "nature park trees"},
	{"nightlife", "party drink club"},
}

// Intent is a classified chat message: a search term to resolve and the
// reply to show. Matched is false when neither presets nor similarity
// produced a category.
type Intent struct {
	Term    string
	Reply   string
	Matched bool
}

// IntentResolver maps free-text input to a search term. A nil embedder
// degrades it to exact preset matching only.
type IntentResolver struct {
	emb domain.Embedder
}

func NewIntentResolver(emb domain.Embedder) *IntentResolver {
	return &IntentResolver{emb: emb}
}

func (ir *IntentResolver) Classify(raw string) Intent {
	raw = strings.TrimSpace(raw)

	// Exact preset phrases always win, even over a higher similarity.
	if key, ok := domain.PresetIntents[raw]; ok {
		resp := domain.IntentResponses[key]
		return Intent{Term: resp.Term, Reply: resp.Reply, Matched: true}
	}

	if ir.emb != nil {
		input := strings.ToLower(raw)
		best := ""
		highest := 0.0
		for _, a := range anchors {
			score := ir.emb.Similarity(input, a.phrase)
			if score > similarityFloor && score > highest {
				highest = score
				best = a.vibe
			}
		}
		if best != "" {
			return Intent{
				Term:    domain.VibeMap[best][0],
				Reply:   "Found some " + best + " spots!",
				Matched: true,
			}
		}
	}

	return Intent{Reply: fallbackReply}
}

// Copyright (c) 2024-2025 Cogitto Health
// SPDX-License-Identifier: AGPL-3.0-or-later

package fallback

import (
	"strings"

	"github.com/cogitto/cogitto-tui/internal/model"
)

// ModelName marks a response as locally synthesized rather than a live AI
// answer. The chat UI uses it to show the offline badge.
const ModelName = "cogitto-fallback"

// =============================================================================
// RESPONSE TYPE
// =============================================================================

// Response is a locally synthesized assistant reply.
type Response struct {
	Content              string
	MentionedMedications []string
	RiskLevel            model.RiskLevel
	AIModel              string
}

// =============================================================================
// RULE TABLE
// =============================================================================

// rule matches when every term appears (case-insensitive) in the input.
// Rules are evaluated in order; the first match wins.
type rule struct {
	terms    []string
	response Response
}

var rules = []rule{
	{
		terms: []string{"ibuprofen", "warfarin"},
		response: Response{
			Content: `⚠️ **MAJOR INTERACTION FOUND**

There is a significant interaction between **ibuprofen** and **warfarin**. This combination increases bleeding risk due to antiplatelet effects.

🚨 **Recommendation**: Avoid this combination. Use acetaminophen instead for pain relief.

**Important**: Please consult your healthcare provider immediately about this interaction.`,
			MentionedMedications: []string{"ibuprofen", "warfarin"},
			RiskLevel:            model.RiskHigh,
		},
	},
	{
		terms: []string{"aspirin", "warfarin"},
		response: Response{
			Content: `⚠️ **MAJOR INTERACTION FOUND**

Combining **aspirin** and **warfarin** significantly increases bleeding risk. Both medications affect your blood's ability to clot.

🚨 **Recommendation**: Do not combine these without explicit medical supervision.

**Important**: Please consult your healthcare provider immediately about this interaction.`,
			MentionedMedications: []string{"aspirin", "warfarin"},
			RiskLevel:            model.RiskHigh,
		},
	},
}

// =============================================================================
// RESPOND
// =============================================================================

// Respond generates a deterministic reply for the given user input.
// Matching is case-insensitive substring search; when no rule matches, a
// generic low-risk reply is returned with no mentioned medications.
func Respond(input string) Response {
	lower := strings.ToLower(input)

	for _, r := range rules {
		if matchesAll(lower, r.terms) {
			resp := r.response
			resp.AIModel = ModelName
			return resp
		}
	}

	return Response{
		Content: `I understand you're asking about "` + input + `". I can help with medication information, drug interactions, side effects, and safety guidance.

💡 **Try asking**:
- "What is [medication name] used for?"
- "Can I take [med1] with [med2]?"
- "What are the side effects of [medication]?"

What specific medication question can I help you with?`,
		MentionedMedications: []string{},
		RiskLevel:            model.RiskLow,
		AIModel:              ModelName,
	}
}

// matchesAll reports whether every term occurs in the lowercased input.
func matchesAll(lower string, terms []string) bool {
	for _, term := range terms {
		if !strings.Contains(lower, term) {
			return false
		}
	}
	return true
}

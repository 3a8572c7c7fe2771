package analysis

import "fmt"

const weightRiskPhrase = 15

// KeywordCategory is one named group of risk trigger phrases.
type KeywordCategory struct {
	Name    string
	Phrases []string
}

// keywordTable is scanned in order; indicator order follows it.
var keywordTable = []KeywordCategory{
	{Name: "urgency", Phrases: []string{
		"urgent", "immediately", "right now", "act fast", "limited time", "expires today", "hurry",
	}},
	{Name: "financial", Phrases: []string{
		"bank account", "credit card", "wire transfer", "bitcoin", "cryptocurrency",
		"investment", "money", "cash prize", "lottery", "won",
	}},
	{Name: "otp", Phrases: []string{
		"otp", "one time password", "verification code", "pin number", "security code",
	}},
	{Name: "impersonation", Phrases: []string{
		"irs", "social security", "police", "fbi", "government", "microsoft", "amazon", "apple", "tech support",
	}},
	{Name: "threats", Phrases: []string{
		"arrest", "warrant", "legal action", "lawsuit", "suspended", "blocked", "terminated",
	}},
	{Name: "pressure", Phrases: []string{
		"dont tell anyone", "don't tell", "keep this secret", "stay on the line", "do not hang up",
	}},
}

// KeywordCategories returns a copy of the risk keyword table.
func KeywordCategories() []KeywordCategory {
	out := make([]KeywordCategory, len(keywordTable))
	for i, c := range keywordTable {
		out[i] = KeywordCategory{Name: c.Name, Phrases: append([]string(nil), c.Phrases...)}
	}
	return out
}

// ScanRisk matches every phrase of every category as a plain substring of
// text. Each matching phrase counts once no matter how often it occurs,
// and overlapping phrases each count.
func ScanRisk(text string) Signal {
	sig := newSignal()
	lower := normalize(text)
	for _, c := range keywordTable {
		for _, p := range c.Phrases {
			if containsPhrase(lower, p) {
				sig.add(weightRiskPhrase, fmt.Sprintf("%s: %q", c.Name, p))
			}
		}
	}
	return sig
}

type riskTier struct {
	min            float64
	classification CallClassification
}

// Evaluated in order, first match wins.
var riskTiers = []riskTier{
	{min: 60, classification: CallFraud},
	{min: 30, classification: CallSpam},
	{min: 0, classification: CallSafe},
}

// ClassifyCall maps a scamScore to a tier. A zero score means no keyword
// matched and yields CallNone rather than CallSafe.
func ClassifyCall(scamScore float64) CallClassification {
	if scamScore <= 0 {
		return CallNone
	}
	for _, t := range riskTiers {
		if scamScore >= t.min {
			return t.classification
		}
	}
	return CallSafe
}

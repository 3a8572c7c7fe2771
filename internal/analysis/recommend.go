package analysis

// Recommendation messages, strongest first.
const (
	RecommendAIFraud   = "HIGH RISK: This appears to be an AI-generated voice with multiple fraud indicators. End the call immediately and do not provide any personal information."
	RecommendAI        = "This voice shows characteristics of AI generation. Exercise caution and verify the caller's identity through official channels."
	RecommendFraud     = "Multiple fraud indicators detected. Do not share personal or financial information. Verify through official channels."
	RecommendSpam      = "Potential spam call detected. Be cautious about any requests for personal information."
	RecommendUncertain = "Unable to determine with high confidence. If suspicious, verify the caller's identity independently."
	RecommendNone      = "No significant concerns detected. Standard verification practices are still recommended for sensitive matters."
)

type recommendationRule struct {
	matches func(VoiceType, CallClassification) bool
	message string
}

// The order encodes severity precedence and must not be rearranged.
var recommendationRules = []recommendationRule{
	{func(v VoiceType, c CallClassification) bool { return v == VoiceAI && c == CallFraud }, RecommendAIFraud},
	{func(v VoiceType, _ CallClassification) bool { return v == VoiceAI }, RecommendAI},
	{func(_ VoiceType, c CallClassification) bool { return c == CallFraud }, RecommendFraud},
	{func(_ VoiceType, c CallClassification) bool { return c == CallSpam }, RecommendSpam},
	{func(v VoiceType, _ CallClassification) bool { return v == VoiceUncertain }, RecommendUncertain},
}

// Recommend returns the single advisory for a voice type and call tier.
func Recommend(v VoiceType, c CallClassification) string {
	for _, r := range recommendationRules {
		if r.matches(v, c) {
			return r.message
		}
	}
	return RecommendNone
}

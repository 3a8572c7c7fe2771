package analysis

// Evaluate runs the full pipeline over one transcription.
func Evaluate(in Input) Result {
	voice := AggregateVoice(in)
	risk := ScanRisk(in.Text)

	voiceType, confidence := ClassifyVoice(voice.Score)
	call := ClassifyCall(risk.Score)

	return Result{
		Verdict: Verdict{
			VoiceType:          voiceType,
			Confidence:         percent(confidence),
			Language:           LanguageName(in.LanguageCode),
			Artifacts:          voice.Labels,
			RiskIndicators:     risk.Labels,
			CallClassification: call,
			Recommendation:     Recommend(voiceType, call),
			Transcription:      in.Text,
		},
		Voice: voice,
		Risk:  risk,
	}
}

// Analyze returns only the verdict for one transcription.
func Analyze(in Input) Verdict {
	return Evaluate(in).Verdict
}

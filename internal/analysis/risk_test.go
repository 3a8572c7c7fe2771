package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanRisk_WireTransferScenario(t *testing.T) {
	sig := ScanRisk("this is urgent, please wire transfer to this bitcoin account now")

	assert.Equal(t, []string{
		`urgency: "urgent"`,
		`financial: "wire transfer"`,
		`financial: "bitcoin"`,
	}, sig.Labels)
	assert.Equal(t, 45.0, sig.Score)
	assert.Equal(t, CallSpam, ClassifyCall(sig.Score))
}

func TestScanRisk(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantLabel []string
	}{
		{"no match", "hello, how was your weekend", []string{}},
		{"case insensitive", "URGENT ACTION required", []string{`urgency: "urgent"`}},
		{"repeated phrase scores once", "urgent urgent urgent", []string{`urgency: "urgent"`}},
		{"substring inside word", "thank you sirs", []string{`impersonation: "irs"`}},
		{"fruit still matches brand", "i love pineapple", []string{`impersonation: "apple"`}},
		{"overlapping phrases both count", "you won the lottery", []string{`financial: "lottery"`, `financial: "won"`}},
		{"apostrophe variant", "Don't tell anyone about this", []string{`pressure: "don't tell"`}},
		{"no apostrophe variant", "dont tell anyone", []string{`pressure: "dont tell anyone"`}},
		{"pin number but not pinpoint", "can you pinpoint it", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sig := ScanRisk(tt.text)
			assert.Equal(t, tt.wantLabel, sig.Labels)
			assert.Equal(t, float64(15*len(tt.wantLabel)), sig.Score)
		})
	}
}

func TestClassifyCall(t *testing.T) {
	tests := []struct {
		score float64
		want  CallClassification
	}{
		{0, CallNone},
		{15, CallSafe},
		{29, CallSafe},
		{30, CallSpam},
		{45, CallSpam},
		{59, CallSpam},
		{60, CallFraud},
		{150, CallFraud},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyCall(tt.score), "score %v", tt.score)
	}
}

func TestKeywordCategories_ReturnsCopy(t *testing.T) {
	cats := KeywordCategories()
	require.Len(t, cats, 6)
	assert.Equal(t, "urgency", cats[0].Name)

	cats[0].Phrases[0] = "changed"
	assert.Equal(t, "urgent", keywordTable[0].Phrases[0])
}

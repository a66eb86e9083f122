package signal

import (
	"math"
	"strings"
)

// Lexicon sentiment scoring for news headlines. Word valences follow the
// usual social-media lexicon conventions; the compound score is normalized
// to [-1,1] with the x/sqrt(x^2+alpha) squashing used by VADER-style
// analyzers.
var wordValence = map[string]float64{
	"surge": 2.0, "soar": 2.2, "rally": 1.8, "gain": 1.4, "gains": 1.4,
	"win": 1.6, "wins": 1.6, "winning": 1.6, "record": 1.2, "boom": 2.0,
	"growth": 1.4, "strong": 1.3, "bullish": 2.0, "optimism": 1.8,
	"optimistic": 1.8, "breakthrough": 2.1, "success": 1.9, "successful": 1.9,
	"approve": 1.3, "approved": 1.3, "positive": 1.5, "rise": 1.2,
	"rises": 1.2, "rising": 1.2, "recovery": 1.4, "upbeat": 1.6,
	"momentum": 1.0, "confidence": 1.2, "good": 1.2, "great": 1.9,
	"best": 1.8, "hope": 1.1, "hopes": 1.1, "beat": 1.3, "beats": 1.3,

	"crash": -2.4, "plunge": -2.2, "plunges": -2.2, "fall": -1.2,
	"falls": -1.2, "falling": -1.2, "drop": -1.3, "drops": -1.3,
	"lose": -1.6, "loses": -1.6, "loss": -1.7, "losses": -1.7,
	"bearish": -2.0, "fear": -1.8, "fears": -1.8, "panic": -2.2,
	"crisis": -2.1, "collapse": -2.4, "weak": -1.3, "decline": -1.4,
	"declines": -1.4, "slump": -1.8, "risk": -1.0, "risks": -1.0,
	"warning": -1.4, "warns": -1.4, "fail": -1.9, "fails": -1.9,
	"failure": -2.0, "bad": -1.4, "worst": -2.0, "negative": -1.5,
	"doubt": -1.2, "doubts": -1.2, "concern": -1.2, "concerns": -1.2,
	"scandal": -1.9, "fraud": -2.3, "ban": -1.5, "banned": -1.5,
	"reject": -1.4, "rejected": -1.4, "uncertainty": -1.4, "miss": -1.1,
	"misses": -1.1,
}

var negations = map[string]struct{}{
	"not": {}, "no": {}, "never": {}, "neither": {}, "nobody": {},
	"none": {}, "without": {}, "hardly": {}, "barely": {}, "isnt": {},
	"wasnt": {}, "wont": {}, "cant": {}, "cannot": {}, "dont": {},
	"doesnt": {}, "didnt": {},
}

const normalizationAlpha = 15.0

// SentimentScore returns a compound sentiment for text in [-1,1];
// 0 when no lexicon word matches.
func SentimentScore(text string) float64 {
	words := tokenize(text)
	sum := 0.0
	matched := false
	for i, w := range words {
		valence, ok := wordValence[w]
		if !ok {
			continue
		}
		matched = true
		if i > 0 {
			if _, neg := negations[words[i-1]]; neg {
				valence = -valence * 0.74
			}
		}
		sum += valence
	}
	if !matched {
		return 0
	}
	return sum / math.Sqrt(sum*sum+normalizationAlpha)
}

func tokenize(text string) []string {
	lower := strings.ToLower(text)
	var b strings.Builder
	b.Grow(len(lower))
	for _, r := range lower {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '\'':
			// drop apostrophes so "don't" folds to "dont"
		default:
			b.WriteRune(' ')
		}
	}
	return strings.Fields(b.String())
}

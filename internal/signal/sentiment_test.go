package signal

import (
	"math"
	"testing"
)

func TestSentimentScore_Direction(t *testing.T) {
	pos := SentimentScore("Markets rally as optimism grows")
	if pos <= 0 {
		t.Fatalf("positive text score=%v want > 0", pos)
	}
	neg := SentimentScore("Stocks crash amid panic and fear")
	if neg >= 0 {
		t.Fatalf("negative text score=%v want < 0", neg)
	}
}

func TestSentimentScore_NoLexiconMatch(t *testing.T) {
	if got := SentimentScore("The committee met on Tuesday"); got != 0 {
		t.Fatalf("score=%v want=0", got)
	}
	if got := SentimentScore(""); got != 0 {
		t.Fatalf("empty score=%v want=0", got)
	}
}

func TestSentimentScore_Bounded(t *testing.T) {
	got := SentimentScore("surge soar rally boom bullish breakthrough success great best win")
	if got <= 0 || got >= 1 {
		t.Fatalf("score=%v want in (0,1)", got)
	}
}

func TestSentimentScore_NegationFlips(t *testing.T) {
	plain := SentimentScore("winning streak continues")
	if plain <= 0 {
		t.Fatalf("plain score=%v want > 0", plain)
	}
	negated := SentimentScore("not winning anymore")
	if negated >= 0 {
		t.Fatalf("negated score=%v want < 0", negated)
	}
	// Negation only applies to the directly preceding token.
	distant := SentimentScore("not a win for the party")
	if distant != SentimentScore("a win for the party") {
		t.Fatalf("distant negation changed score: %v", distant)
	}
}

func TestSentimentScore_MatchesNormalization(t *testing.T) {
	// Single word "gain" has valence 1.4.
	want := 1.4 / math.Sqrt(1.4*1.4+15.0)
	if got := SentimentScore("gain"); math.Abs(got-want) > 1e-12 {
		t.Fatalf("score=%v want=%v", got, want)
	}
}

func TestTokenize_FoldsApostrophes(t *testing.T) {
	words := tokenize("Don't panic!")
	if len(words) != 2 || words[0] != "dont" || words[1] != "panic" {
		t.Fatalf("tokenize=%v want [dont panic]", words)
	}
}

// Package evaluator scores model responses with coarse lexical heuristics.
// Scores are deterministic for identical inputs and always fall in
// [0.0, 1.0]. They are intentionally not semantic judgments; the word
// lists and thresholds below are the compatibility contract, and changing
// them changes reported scores for identical inputs.
package evaluator

import (
	"regexp"
	"strings"

	"github.com/emiliopalmerini/promptlab/internal/domain"
)

var wordPattern = regexp.MustCompile(`\b\w+\b`)

var stopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {},
	"in": {}, "on": {}, "at": {}, "to": {}, "for": {}, "of": {},
	"with": {}, "by": {}, "from": {}, "is": {}, "are": {}, "was": {},
	"were": {}, "be": {}, "been": {},
}

var confidenceWords = []string{
	"definitely", "certainly", "clearly", "specifically",
	"precisely", "exactly", "proven", "established",
}

var hedgeWords = []string{
	"maybe", "perhaps", "possibly", "might", "could", "uncertain",
	"unclear", "probably", "likely", "seems", "appears",
}

var structureMarkers = []string{"1.", "2.", "-", "•", "First", "Second"}

var contrastWords = []string{
	"however", "but", "although", "contrary", "despite",
	"on the other hand", "conversely",
}

var biasIndicators = []string{
	"obviously", "clearly", "everyone knows", "it is well known",
	"always", "never", "all", "none", "must", "should",
	"superior", "inferior", "better", "worse", "best", "worst",
}

var balanceWords = []string{"consider", "perspective", "may", "can"}

// Evaluate scores a response across the six heuristic dimensions.
// responseTime is the wall-clock generation latency in seconds and
// tokensUsed the token count reported by the model.
func Evaluate(prompt, response string, responseTime float64, tokensUsed int64) domain.ScoreSet {
	return domain.ScoreSet{
		Relevance:    evaluateRelevance(prompt, response),
		Accuracy:     evaluateAccuracy(response),
		Completeness: evaluateCompleteness(response),
		Consistency:  evaluateConsistency(response),
		Efficiency:   evaluateEfficiency(responseTime, tokensUsed),
		Bias:         evaluateBias(response),
	}
}

// evaluateRelevance measures keyword overlap between prompt and response
// after stop-word removal. A prompt with no meaningful words scores a
// neutral 0.5.
func evaluateRelevance(prompt, response string) float64 {
	promptWords := meaningfulWords(prompt)
	if len(promptWords) == 0 {
		return 0.5
	}
	responseWords := meaningfulWords(response)

	overlap := 0
	for w := range promptWords {
		if _, ok := responseWords[w]; ok {
			overlap++
		}
	}

	score := float64(overlap) / float64(len(promptWords))
	if score > 1.0 {
		score = 1.0
	}
	return score
}

// evaluateAccuracy rewards confident language and penalizes hedging,
// starting from a neutral 0.7 prior. Matching is substring containment
// per distinct list word.
func evaluateAccuracy(response string) float64 {
	lower := strings.ToLower(response)

	score := 0.7
	for _, w := range confidenceWords {
		if strings.Contains(lower, w) {
			score += 0.05
		}
	}
	for _, w := range hedgeWords {
		if strings.Contains(lower, w) {
			score -= 0.05
		}
	}

	return clamp(score)
}

// evaluateCompleteness scores response length and structure. The optimal
// range is roughly 50-200 words and 3-8 sentences; list markers earn a
// flat bonus.
func evaluateCompleteness(response string) float64 {
	wordCount := len(strings.Fields(response))
	sentenceCount := len(splitSentences(response))

	var wordScore float64
	if wordCount < 100 {
		wordScore = min(float64(wordCount)/100, 1.0)
	} else {
		wordScore = max(1.0-float64(wordCount-200)/200, 0.5)
	}

	var sentenceScore float64
	if sentenceCount < 5 {
		sentenceScore = min(float64(sentenceCount)/5, 1.0)
	} else {
		sentenceScore = 1.0
	}

	bonus := 0.0
	for _, marker := range structureMarkers {
		if strings.Contains(response, marker) {
			bonus = 0.1
			break
		}
	}

	return clamp((wordScore+sentenceScore)/2 + bonus)
}

// evaluateConsistency penalizes contrast-word pileups and verbatim
// sentence repetition.
func evaluateConsistency(response string) float64 {
	lower := strings.ToLower(response)

	count := 0
	for _, w := range contrastWords {
		if strings.Contains(lower, w) {
			count++
		}
	}

	var score float64
	switch {
	case count == 0:
		score = 0.9
	case count == 1:
		score = 0.7
	default:
		score = max(0.5-float64(count-2)*0.1, 0.3)
	}

	sentences := splitSentences(response)
	if len(sentences) > 1 {
		distinct := make(map[string]struct{}, len(sentences))
		for _, s := range sentences {
			distinct[s] = struct{}{}
		}
		score *= float64(len(distinct)) / float64(len(sentences))
	}

	return clamp(score)
}

// evaluateEfficiency maps latency and token usage onto fixed threshold
// bands and averages the two.
func evaluateEfficiency(responseTime float64, tokensUsed int64) float64 {
	var timeScore float64
	switch {
	case responseTime < 2.0:
		timeScore = 1.0
	case responseTime < 5.0:
		timeScore = 0.8
	case responseTime < 10.0:
		timeScore = 0.6
	default:
		timeScore = 0.4
	}

	var tokenScore float64
	switch {
	case tokensUsed < 150:
		tokenScore = 1.0
	case tokensUsed < 300:
		tokenScore = 0.8
	case tokensUsed < 500:
		tokenScore = 0.6
	default:
		tokenScore = 0.4
	}

	return (timeScore + tokenScore) / 2
}

// evaluateBias deducts 0.1 per loaded-language indicator present and
// credits 0.1 when any balancing cue appears.
func evaluateBias(response string) float64 {
	lower := strings.ToLower(response)

	count := 0
	for _, w := range biasIndicators {
		if strings.Contains(lower, w) {
			count++
		}
	}

	score := 1.0 - float64(count)*0.1

	for _, w := range balanceWords {
		if strings.Contains(lower, w) {
			score = min(score+0.1, 1.0)
			break
		}
	}

	return clamp(score)
}

func meaningfulWords(text string) map[string]struct{} {
	words := make(map[string]struct{})
	for _, w := range wordPattern.FindAllString(strings.ToLower(text), -1) {
		if _, stop := stopWords[w]; !stop {
			words[w] = struct{}{}
		}
	}
	return words
}

var sentenceSplit = regexp.MustCompile(`[.!?]+`)

func splitSentences(text string) []string {
	var sentences []string
	for _, s := range sentenceSplit.Split(strings.TrimSpace(text), -1) {
		if s = strings.TrimSpace(s); s != "" {
			sentences = append(sentences, s)
		}
	}
	return sentences
}

func clamp(score float64) float64 {
	if score < 0.0 {
		return 0.0
	}
	if score > 1.0 {
		return 1.0
	}
	return score
}

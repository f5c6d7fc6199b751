package assistant

import "unicode"

// tokensPerWord is the approximation ratio (1 word ≈ 1.3 tokens).
const tokensPerWord = 1.3

// estimateTokens estimates the number of tokens in a prompt. It is a
// lightweight word-count approximation used only for debug logging of
// provider call sizes; billing-grade accuracy is not needed here.
func estimateTokens(text string) int {
	if text == "" {
		return 0
	}

	wordCount := 0
	inWord := false

	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			if !inWord {
				wordCount++
				inWord = true
			}
		} else {
			inWord = false
		}
	}

	tokens := int(float64(wordCount) * tokensPerWord)
	if tokens == 0 && wordCount > 0 {
		tokens = 1
	}

	return tokens
}

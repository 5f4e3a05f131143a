// Package textsplit breaks long voice-over text into blocks that fit the
// TTS provider's request size limit, preferring sentence boundaries.
package textsplit

import (
	"regexp"
	"strings"
)

var sentenceRegex = regexp.MustCompile(`[.!?]+(?:\s+|$)`)

// SplitByCharLimit splits text into blocks of at most charLimit
// characters. Blocks end on sentence boundaries where possible; a single
// sentence longer than the limit is split on word boundaries.
func SplitByCharLimit(text string, charLimit int) []string {
	if len(text) <= charLimit {
		return []string{text}
	}

	var blocks []string
	currentBlock := ""

	sentences := sentenceRegex.Split(text, -1)
	sentenceEnds := sentenceRegex.FindAllStringIndex(text, -1)

	// Reconstruct sentences with their punctuation
	var fullSentences []string
	for i, sentence := range sentences {
		if i < len(sentenceEnds) {
			punctuation := text[sentenceEnds[i][0]:sentenceEnds[i][1]]
			fullSentences = append(fullSentences, sentence+punctuation)
		} else if strings.TrimSpace(sentence) != "" {
			// Last sentence might not have punctuation
			fullSentences = append(fullSentences, sentence)
		}
	}

	for _, sentence := range fullSentences {
		sentence = strings.TrimSpace(sentence)
		if sentence == "" {
			continue
		}

		if len(currentBlock)+len(sentence) > charLimit {
			if currentBlock != "" {
				blocks = append(blocks, strings.TrimSpace(currentBlock))
				currentBlock = ""
			}

			if len(sentence) > charLimit {
				currentBlock = splitLongSentence(sentence, charLimit, &blocks)
			} else {
				currentBlock = sentence
			}
		} else {
			if currentBlock == "" {
				currentBlock = sentence
			} else {
				currentBlock += " " + sentence
			}
		}
	}

	if currentBlock != "" {
		blocks = append(blocks, strings.TrimSpace(currentBlock))
	}

	return blocks
}

// splitLongSentence splits an over-long sentence by words, appending full
// blocks and returning the unfinished remainder.
func splitLongSentence(sentence string, charLimit int, blocks *[]string) string {
	words := strings.Fields(sentence)
	tempSentence := ""

	for _, word := range words {
		if len(tempSentence)+len(word)+1 <= charLimit {
			if tempSentence == "" {
				tempSentence = word
			} else {
				tempSentence += " " + word
			}
		} else {
			if tempSentence != "" {
				*blocks = append(*blocks, tempSentence)
				tempSentence = word
			} else {
				// Single word longer than the limit, force add it
				*blocks = append(*blocks, word)
				tempSentence = ""
			}
		}
	}

	return tempSentence
}

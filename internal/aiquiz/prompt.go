package aiquiz

import (
	"fmt"
	"strings"

	"github.com/saulo-duarte/aptitude-lambda/internal/category"
	"github.com/saulo-duarte/aptitude-lambda/internal/question"
)

const (
	DefaultCount = 3
	MaxCount     = 10
)

const systemPrompt = `
You write multiple-choice questions for an aptitude and professional exam practice platform used in Tanzania.

Rules:
1. Each question has exactly four options and a single correct answer.
2. Options are plausible, of similar length and structure. Never make the correct one stand out.
3. Never reveal the answer in the question text. Explain only in "explanation".
4. When you can, add a Swahili translation in "question_sw" and "options_sw" (same order as "options").
5. "answer" is the letter of the correct option: A, B, C or D.

Answer with pure JSON only, no text around it:

[
  {
    "question": "<question text>",
    "options": ["...", "...", "...", "..."],
    "answer": "C",
    "explanation": "<short explanation of why the answer is correct>",
    "question_sw": "<optional>",
    "options_sw": ["...", "...", "...", "..."]
  }
]
`

func clampCount(n int) int {
	if n <= 0 {
		return DefaultCount
	}
	if n > MaxCount {
		return MaxCount
	}
	return n
}

func BuildUserPrompt(cat category.Category, difficulty question.Difficulty, count int, context string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write %d %s-level questions for the category %q (%s).",
		count, difficulty, cat.Title, cat.Description)
	if ctx := strings.TrimSpace(context); ctx != "" {
		fmt.Fprintf(&b, " Base them on this context: %s.", ctx)
	}
	b.WriteString(" Vary the style between direct, applied and analytical questions.")
	return b.String()
}

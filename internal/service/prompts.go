package service

import (
	"fmt"
	"strings"
)

const testPrompt = "Test connection. Reply with 'OK'"

// analysisPrompt собирает промпт разбора стиля. Все строки уже прошли Sanitize.
func analysisPrompt(username, name, bio string, followers int64, texts []string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "\nAnalyze the writing style of @%s based on these tweets:\n\n", username)
	b.WriteString("PROFILE:\n")
	fmt.Fprintf(&b, "- Name: %s\n", name)
	fmt.Fprintf(&b, "- Bio: %s\n", bio)
	fmt.Fprintf(&b, "- Followers: %d\n\n", followers)

	fmt.Fprintf(&b, "TWEETS (%d tweets):\n", len(texts))
	for i, t := range texts {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%d. %q", i+1, t)
	}

	b.WriteString(`

Please provide a detailed writing style analysis in JSON format with this exact structure:

{
  "overall_tone": "description of general tone (professional, casual, technical, etc.)",
  "writing_style": "description of writing style",
  "common_topics": ["topic1", "topic2", "topic3"],
  "language_patterns": ["pattern1", "pattern2", "pattern3"],
  "emotional_sentiment": "predominant emotional sentiment",
  "engagement_level": "engagement level (high/medium/low)",
  "suggestions": ["suggestion1", "suggestion2", "suggestion3"],
  "score": number_between_1_and_100
}

Respond ONLY with valid JSON, no additional text.
`)

	return b.String()
}

// chatPrompt — без контекста уходит само сообщение.
func chatPrompt(message, context string) string {
	if context == "" {
		return message
	}

	return fmt.Sprintf("\nCONTEXT: %s\n\nUSER QUESTION: %s\n\nPlease respond in English in a helpful and conversational manner.\n", context, message)
}

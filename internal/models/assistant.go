package models

import (
	"encoding/json"
	"time"
)

// Разбор стиля письма, полученный от языковой модели.
// Score всегда в [1,100].
type StyleAnalysis struct {
	OverallTone        string   `json:"overall_tone"`
	WritingStyle       string   `json:"writing_style"`
	CommonTopics       []string `json:"common_topics"`
	LanguagePatterns   []string `json:"language_patterns"`
	EmotionalSentiment string   `json:"emotional_sentiment"`
	EngagementLevel    string   `json:"engagement_level"`
	Suggestions        []string `json:"suggestions"`
	Score              int      `json:"score"`
}

// Тело data для action=analyze.
type AnalyzeRequest struct {
	Tweets []PostText   `json:"tweets"`
	User   *AnalyzeUser `json:"user"`
}

type PostText struct {
	Text string `json:"text"`
}

// Сводка профиля, присланная клиентом вместе с постами.
type AnalyzeUser struct {
	Username      string `json:"username"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	PublicMetrics struct {
		FollowersCount json.Number `json:"followers_count"`
	} `json:"public_metrics"`
}

// Тело data для action=chat.
type ChatRequest struct {
	Message *string `json:"message"`
	Context *string `json:"context"`
}

// Вход для анализа: тексты постов и сводка профиля.
type AnalyzeInput struct {
	Texts       []string
	Name        string
	Username    string
	Description string
	Followers   int64
}

type ChatInput struct {
	Message string
	Context string
}

// Счётчики токенов ответа модели.
type Usage struct {
	PromptTokens    int `json:"promptTokens"`
	CandidateTokens int `json:"candidateTokens"`
	TotalTokens     int `json:"totalTokens"`
}

// Ответ модели на произвольный промпт.
type Completion struct {
	Text  string
	Usage Usage
}

type ChatMessage struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

type ChatReply struct {
	Content string      `json:"content"`
	Usage   Usage       `json:"usage"`
	Message ChatMessage `json:"message"`
}

// Результат проверки связи с моделью.
type ModelCheck struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

package models

import "time"

// Настройки интерфейса.
type AppSettings struct {
	Theme         *string `json:"theme,omitempty"`
	Language      *string `json:"language,omitempty"`
	Notifications *bool   `json:"notifications,omitempty"`
}

// Тело POST /config. Ключи принимаются только для проверки формата
// и логируются в замаскированном виде; шлюз их не хранит.
type SettingsSave struct {
	TwitterAPIKey *string      `json:"twitterApiKey,omitempty"`
	GeminiAPIKey  *string      `json:"geminiApiKey,omitempty"`
	Username      *string      `json:"username,omitempty"`
	AppSettings   *AppSettings `json:"appSettings,omitempty"`
}

// Тело PUT /config.
type SettingsPatch struct {
	Field string `json:"field"`
	Value any    `json:"value"`
}

// Тело DELETE /config.
type SettingsDelete struct {
	Confirm string `json:"confirm"`
}

// Ответ GET /config.
type ConfigStatus struct {
	HasTwitterAPIKey bool      `json:"hasTwitterApiKey"`
	HasGeminiAPIKey  bool      `json:"hasGeminiApiKey"`
	Environment      string    `json:"environment"`
	AppURL           string    `json:"appUrl"`
	Version          string    `json:"version"`
	Timestamp        time.Time `json:"timestamp"`
}

// Ответ GET /gemini.
type ModelStatus struct {
	Status     string    `json:"status"`
	Configured bool      `json:"configured"`
	Model      string    `json:"model"`
	Version    string    `json:"version"`
	Timestamp  time.Time `json:"timestamp"`
}

// Универсальный ответ на изменение настроек.
type Ack struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

package service

import (
	"context"
	"log/slog"

	apierrors "github.com/pribylovaa/x-assistant/internal/errors"
	"github.com/pribylovaa/x-assistant/internal/models"
	"github.com/pribylovaa/x-assistant/internal/pkg/log"
	"github.com/pribylovaa/x-assistant/internal/pkg/redact"
	"github.com/pribylovaa/x-assistant/internal/validate"
)

// DeleteConfirmation — обязательное значение confirm для DELETE /config.
const DeleteConfirmation = "DELETE_ALL_CONFIG"

// ValidateSettings проверяет тело POST /config и возвращает список нарушений.
// Пустые и отсутствующие поля не проверяются.
func ValidateSettings(in models.SettingsSave) []string {
	var errs []string

	if in.TwitterAPIKey != nil && *in.TwitterAPIKey != "" && !validate.APIKeyFormat(*in.TwitterAPIKey) {
		errs = append(errs, "Invalid Twitter API key format")
	}
	if in.GeminiAPIKey != nil && *in.GeminiAPIKey != "" && !validate.APIKeyFormat(*in.GeminiAPIKey) {
		errs = append(errs, "Invalid Gemini API key format")
	}
	if in.Username != nil && *in.Username != "" && !validate.IsHandle(*in.Username) {
		errs = append(errs, "Invalid Twitter username format")
	}

	if a := in.AppSettings; a != nil {
		if a.Theme != nil && *a.Theme != "" && !validate.Theme(*a.Theme) {
			errs = append(errs, "Invalid theme value")
		}
		if a.Language != nil && *a.Language != "" && !validate.Language(*a.Language) {
			errs = append(errs, "Invalid language value")
		}
	}

	return errs
}

// ValidateField проверяет одно поле PUT /config.
func ValidateField(p models.SettingsPatch) error {
	str, isStr := p.Value.(string)

	switch p.Field {
	case "username":
		if !isStr || !validate.IsHandle(str) {
			return apierrors.Validation("Invalid username format")
		}
	case "theme":
		if !isStr || !validate.Theme(str) {
			return apierrors.Validation("Invalid theme value")
		}
	case "language":
		if !isStr || !validate.Language(str) {
			return apierrors.Validation("Invalid language value")
		}
	case "notifications":
		if _, ok := p.Value.(bool); !ok {
			return apierrors.Validation("Invalid notifications value")
		}
	default:
		return apierrors.Validation("Invalid field specified")
	}

	return nil
}

// SaveSettings проверяет присланные настройки. Шлюз их не хранит:
// настройки живут в браузере, в лог уходят только замаскированные ключи.
func (s *Service) SaveSettings(ctx context.Context, in models.SettingsSave) (models.Ack, error) {
	const op = "service.settings.SaveSettings"

	lg := log.From(ctx)

	if errs := ValidateSettings(in); len(errs) > 0 {
		lg.Warn("settings_invalid", slog.String("op", op), slog.Any("errors", errs))
		return models.Ack{}, apierrors.Validation("Invalid configuration data", errs...)
	}

	attrs := []any{slog.String("op", op)}
	if in.TwitterAPIKey != nil {
		attrs = append(attrs, slog.String("twitter_api_key", redact.APIKey(*in.TwitterAPIKey)))
	}
	if in.GeminiAPIKey != nil {
		attrs = append(attrs, slog.String("gemini_api_key", redact.APIKey(*in.GeminiAPIKey)))
	}
	if in.Username != nil {
		attrs = append(attrs, slog.String("username", *in.Username))
	}
	attrs = append(attrs, slog.Bool("has_app_settings", in.AppSettings != nil))
	lg.Info("settings_saved", attrs...)

	return s.ack("Configuration saved successfully"), nil
}

// PatchSetting проверяет изменение одного поля.
func (s *Service) PatchSetting(ctx context.Context, p models.SettingsPatch) (models.Ack, error) {
	const op = "service.settings.PatchSetting"

	if err := ValidateField(p); err != nil {
		log.From(ctx).Warn("settings_field_invalid", slog.String("op", op), slog.String("field", p.Field))
		return models.Ack{}, err
	}

	log.From(ctx).Info("settings_field_updated",
		slog.String("op", op),
		slog.String("field", p.Field),
		slog.Bool("has_value", p.Value != nil),
	)

	return s.ack(p.Field + " updated successfully"), nil
}

// ClearSettings требует явного подтверждения DeleteConfirmation.
func (s *Service) ClearSettings(ctx context.Context, d models.SettingsDelete) (models.Ack, error) {
	const op = "service.settings.ClearSettings"

	if d.Confirm != DeleteConfirmation {
		return models.Ack{}, apierrors.Validation("Delete confirmation required")
	}

	log.From(ctx).Warn("settings_cleared", slog.String("op", op))

	return s.ack("Configuration cleared successfully"), nil
}

// Status — ответ GET /config без секретов.
func (s *Service) Status(ctx context.Context) models.ConfigStatus {
	st := models.ConfigStatus{
		HasTwitterAPIKey: s.opts.SocialConfigured,
		HasGeminiAPIKey:  s.opts.LanguageKey != "",
		Environment:      s.opts.Env,
		AppURL:           s.opts.AppURL,
		Version:          s.opts.Version,
		Timestamp:        s.now().UTC(),
	}
	if st.AppURL == "" {
		st.AppURL = "not configured"
	}

	log.From(ctx).Debug("settings_status",
		slog.Bool("has_twitter_api_key", st.HasTwitterAPIKey),
		slog.Bool("has_gemini_api_key", st.HasGeminiAPIKey),
	)

	return st
}

func (s *Service) ack(msg string) models.Ack {
	return models.Ack{Success: true, Message: msg, Timestamp: s.now().UTC()}
}

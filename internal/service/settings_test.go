package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	apierrors "github.com/pribylovaa/x-assistant/internal/errors"
	"github.com/pribylovaa/x-assistant/internal/models"
)

func TestValidateSettings(t *testing.T) {
	t.Parallel()

	require.Empty(t, ValidateSettings(models.SettingsSave{}))
	require.Empty(t, ValidateSettings(models.SettingsSave{
		TwitterAPIKey: ptr("rapid-key-0123456789abcdef"),
		GeminiAPIKey:  ptr(""),
		Username:      ptr("@jack"),
		AppSettings:   &models.AppSettings{Theme: ptr("dark"), Language: ptr("es"), Notifications: ptr(true)},
	}))

	got := ValidateSettings(models.SettingsSave{
		TwitterAPIKey: ptr("short"),
		GeminiAPIKey:  ptr("short"),
		Username:      ptr("bad name"),
		AppSettings:   &models.AppSettings{Theme: ptr("neon"), Language: ptr("de")},
	})
	require.Equal(t, []string{
		"Invalid Twitter API key format",
		"Invalid Gemini API key format",
		"Invalid Twitter username format",
		"Invalid theme value",
		"Invalid language value",
	}, got)
}

func TestValidateField(t *testing.T) {
	t.Parallel()

	cases := []struct {
		patch models.SettingsPatch
		msg   string
	}{
		{models.SettingsPatch{Field: "username", Value: "jack"}, ""},
		{models.SettingsPatch{Field: "username", Value: 42}, "Invalid username format"},
		{models.SettingsPatch{Field: "theme", Value: "auto"}, ""},
		{models.SettingsPatch{Field: "theme", Value: "neon"}, "Invalid theme value"},
		{models.SettingsPatch{Field: "language", Value: "en"}, ""},
		{models.SettingsPatch{Field: "language", Value: nil}, "Invalid language value"},
		{models.SettingsPatch{Field: "notifications", Value: false}, ""},
		{models.SettingsPatch{Field: "notifications", Value: "yes"}, "Invalid notifications value"},
		{models.SettingsPatch{Field: "twitterApiKey", Value: "x"}, "Invalid field specified"},
		{models.SettingsPatch{}, "Invalid field specified"},
	}

	for _, tc := range cases {
		err := ValidateField(tc.patch)
		if tc.msg == "" {
			require.NoError(t, err, tc.patch.Field)
			continue
		}
		e, ok := apierrors.As(err)
		require.True(t, ok)
		require.Equal(t, tc.msg, e.Message)
	}
}

func TestSettingsOps(t *testing.T) {
	t.Parallel()

	fixed := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	svc := New(nil, nil, Options{SocialConfigured: true, Env: "prod", Version: "1.0.0"})
	svc.now = func() time.Time { return fixed }
	ctx := context.Background()

	ack, err := svc.SaveSettings(ctx, models.SettingsSave{GeminiAPIKey: ptr("AIzaSyFakeKeyForTests000")})
	require.NoError(t, err)
	require.Equal(t, models.Ack{Success: true, Message: "Configuration saved successfully", Timestamp: fixed}, ack)

	_, err = svc.SaveSettings(ctx, models.SettingsSave{Username: ptr("bad name")})
	e, ok := apierrors.As(err)
	require.True(t, ok)
	require.Equal(t, http.StatusBadRequest, e.Status)
	require.Equal(t, "Invalid configuration data", e.Message)
	require.Equal(t, []string{"Invalid Twitter username format"}, e.Details)

	ack, err = svc.PatchSetting(ctx, models.SettingsPatch{Field: "theme", Value: "dark"})
	require.NoError(t, err)
	require.Equal(t, "theme updated successfully", ack.Message)

	_, err = svc.ClearSettings(ctx, models.SettingsDelete{Confirm: "yes"})
	e, ok = apierrors.As(err)
	require.True(t, ok)
	require.Equal(t, "Delete confirmation required", e.Message)

	ack, err = svc.ClearSettings(ctx, models.SettingsDelete{Confirm: DeleteConfirmation})
	require.NoError(t, err)
	require.Equal(t, "Configuration cleared successfully", ack.Message)

	st := svc.Status(ctx)
	require.True(t, st.HasTwitterAPIKey)
	require.False(t, st.HasGeminiAPIKey)
	require.Equal(t, "prod", st.Environment)
	require.Equal(t, "not configured", st.AppURL)
	require.Equal(t, fixed, st.Timestamp)
}

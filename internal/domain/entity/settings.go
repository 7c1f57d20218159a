package entity

import "time"

// ScreenMode is the client theme preference.
type ScreenMode string

const (
	ScreenModeLight ScreenMode = "light"
	ScreenModeDark  ScreenMode = "dark"
)

// Language is the client language preference.
type Language string

const (
	LanguageKorean  Language = "Korean"
	LanguageEnglish Language = "English"
)

// IsValid checks if the Language is a valid value.
func (l Language) IsValid() bool {
	return l == LanguageKorean || l == LanguageEnglish
}

// Alarms toggles notification categories.
type Alarms struct {
	Message   bool `json:"message"`
	Comment   bool `json:"comment"`
	Following bool `json:"following"`
	NewPost   bool `json:"newPost"`
}

// UserSettings holds per-user client preferences, one row per userId.
type UserSettings struct {
	UserID     string     `json:"userId"`
	ScreenMode ScreenMode `json:"screenMode"`
	Alarms     Alarms     `json:"alarms"`
	Language   Language   `json:"language"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// NewUserSettings applies the defaults for empty preferences.
func NewUserSettings(userID string, alarms Alarms, language Language, darkMode bool) *UserSettings {
	if !language.IsValid() {
		language = LanguageKorean
	}
	mode := ScreenModeLight
	if darkMode {
		mode = ScreenModeDark
	}

	return &UserSettings{
		UserID:     userID,
		ScreenMode: mode,
		Alarms:     alarms,
		Language:   language,
	}
}

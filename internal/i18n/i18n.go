// Package i18n selects user-facing strings by language code.
package i18n

import (
	"context"
	"sync"

	apperrors "mindcare/internal/errors"
	"mindcare/internal/localstore"
)

const DefaultLanguage = "en"

type Language struct {
	Code       string
	Name       string
	NativeName string
}

// Storage persists the chosen language code.
type Storage interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

var languages = []Language{
	{Code: "en", Name: "English", NativeName: "English"},
	{Code: "hi", Name: "Hindi", NativeName: "हिन्दी"},
	{Code: "bn", Name: "Bengali", NativeName: "বাংলা"},
	{Code: "te", Name: "Telugu", NativeName: "తెలుగు"},
	{Code: "mr", Name: "Marathi", NativeName: "मराठी"},
	{Code: "ta", Name: "Tamil", NativeName: "தமிழ்"},
	{Code: "gu", Name: "Gujarati", NativeName: "ગુજરાતી"},
	{Code: "kn", Name: "Kannada", NativeName: "ಕನ್ನಡ"},
	{Code: "ml", Name: "Malayalam", NativeName: "മലയാളം"},
	{Code: "pa", Name: "Punjabi", NativeName: "ਪੰਜਾਬੀ"},
	{Code: "or", Name: "Odia", NativeName: "ଓଡିଆ"},
}

type Translator struct {
	mu      sync.RWMutex
	storage Storage
	current string
}

// New restores the stored language, falling back to fallback and then to
// English when nothing usable is stored.
func New(ctx context.Context, storage Storage, fallback string) (*Translator, error) {
	current := DefaultLanguage
	if IsSupported(fallback) {
		current = fallback
	}
	stored, ok, err := storage.Get(ctx, localstore.KeyLanguage)
	if err != nil {
		return nil, err
	}
	if ok && IsSupported(stored) {
		current = stored
	}
	return &Translator{storage: storage, current: current}, nil
}

func Languages() []Language {
	out := make([]Language, len(languages))
	copy(out, languages)
	return out
}

func IsSupported(code string) bool {
	for _, language := range languages {
		if language.Code == code {
			return true
		}
	}
	return false
}

func (t *Translator) Current() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.current
}

func (t *Translator) SetLanguage(ctx context.Context, code string) error {
	if !IsSupported(code) {
		return apperrors.Validation("unknown_language", "unsupported language: "+code)
	}
	if err := t.storage.Set(ctx, localstore.KeyLanguage, code); err != nil {
		return err
	}
	t.mu.Lock()
	t.current = code
	t.mu.Unlock()
	return nil
}

// T looks key up in the current language, then English, then returns the
// key itself.
func (t *Translator) T(key string) string {
	current := t.Current()
	if value, ok := translations[current][key]; ok && value != "" {
		return value
	}
	if value, ok := translations[DefaultLanguage][key]; ok && value != "" {
		return value
	}
	return key
}

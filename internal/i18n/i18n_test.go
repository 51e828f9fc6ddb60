package i18n

import (
	"context"
	"errors"
	"testing"

	apperrors "mindcare/internal/errors"
	"mindcare/internal/localstore"
)

type memoryStorage struct {
	values map[string]string
	setErr error
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{values: make(map[string]string)}
}

func (m *memoryStorage) Get(_ context.Context, key string) (string, bool, error) {
	value, ok := m.values[key]
	return value, ok, nil
}

func (m *memoryStorage) Set(_ context.Context, key, value string) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.values[key] = value
	return nil
}

func TestTranslateFallsBackToEnglishThenKey(t *testing.T) {
	ctx := context.Background()
	storage := newMemoryStorage()
	translator, err := New(ctx, storage, "")
	if err != nil {
		t.Fatalf("new translator: %v", err)
	}
	if translator.Current() != "en" {
		t.Fatalf("expected en by default, got %s", translator.Current())
	}

	if err := translator.SetLanguage(ctx, "hi"); err != nil {
		t.Fatalf("set language: %v", err)
	}
	if got := translator.T("nav.home"); got != "होम" {
		t.Fatalf("expected Hindi string, got %q", got)
	}
	if got := translator.T("game.moves"); got != "Moves" {
		t.Fatalf("expected English fallback, got %q", got)
	}
	if got := translator.T("missing.key"); got != "missing.key" {
		t.Fatalf("expected the key itself, got %q", got)
	}

	if err := translator.SetLanguage(ctx, "ta"); err != nil {
		t.Fatalf("set language: %v", err)
	}
	if got := translator.T("nav.home"); got != "Home" {
		t.Fatalf("expected English for a language without a table, got %q", got)
	}
}

func TestLanguagePersistence(t *testing.T) {
	ctx := context.Background()
	storage := newMemoryStorage()
	storage.values[localstore.KeyLanguage] = "hi"

	translator, err := New(ctx, storage, "en")
	if err != nil {
		t.Fatalf("new translator: %v", err)
	}
	if translator.Current() != "hi" {
		t.Fatalf("expected stored language, got %s", translator.Current())
	}

	err = translator.SetLanguage(ctx, "xx")
	if !apperrors.IsValidation(err) {
		t.Fatalf("expected a validation error, got %v", err)
	}
	if storage.values[localstore.KeyLanguage] != "hi" {
		t.Fatal("an unknown code must not be stored")
	}

	storage.setErr = errors.New("disk full")
	if err := translator.SetLanguage(ctx, "bn"); err == nil {
		t.Fatal("expected the storage error")
	}
	if translator.Current() != "hi" {
		t.Fatal("language must not change when it cannot be stored")
	}
}

func TestLanguagesListed(t *testing.T) {
	list := Languages()
	if len(list) != 11 || list[0].Code != "en" || list[len(list)-1].Code != "or" {
		t.Fatalf("unexpected language list %+v", list)
	}
	list[0].Code = "zz"
	if !IsSupported("en") {
		t.Fatal("callers must not be able to mutate the language list")
	}
}

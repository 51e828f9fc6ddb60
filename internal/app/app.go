// Package app composes the client: storage, backend client, session,
// translations and the feature services each view uses.
package app

import (
	"context"
	"fmt"

	"mindcare/internal/admin"
	"mindcare/internal/api"
	"mindcare/internal/booking"
	"mindcare/internal/breathing"
	"mindcare/internal/chat"
	"mindcare/internal/config"
	"mindcare/internal/forum"
	"mindcare/internal/i18n"
	"mindcare/internal/localstore"
	"mindcare/internal/memorygame"
	"mindcare/internal/relaxation"
	"mindcare/internal/session"
	"mindcare/internal/timer"
	"mindcare/internal/wellness"
)

type App struct {
	Config     config.Client
	Store      *localstore.Store
	API        *api.Client
	Session    *session.Session
	Translator *i18n.Translator

	Booking  *booking.Negotiator
	Forum    *forum.Board
	Wellness *wellness.Tracker
	Chat     *chat.Conversation
	Player   *relaxation.Player

	scheduler timer.Scheduler
}

// New opens local storage, restores the session and builds the features.
func New(ctx context.Context, cfg config.Client) (*App, error) {
	store, err := localstore.Open(cfg.DataPath)
	if err != nil {
		return nil, fmt.Errorf("open local storage: %w", err)
	}

	client := api.New(api.Options{
		BaseURL:           cfg.APIBaseURL,
		Timeout:           cfg.HTTPTimeout,
		RequestsPerSecond: cfg.RequestsPerSecond,
		ChatPerMinute:     cfg.ChatPerMinute,
	})

	sess := session.New(store, client)
	if err := sess.Init(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("restore session: %w", err)
	}

	translator, err := i18n.New(ctx, store, cfg.Language)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("load language: %w", err)
	}

	board := forum.NewBoard(client, store)
	if err := board.Restore(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("restore forum cache: %w", err)
	}

	return &App{
		Config:     cfg,
		Store:      store,
		API:        client,
		Session:    sess,
		Translator: translator,
		Booking:    booking.NewNegotiator(client),
		Forum:      board,
		Wellness:   wellness.New(client),
		Chat:       chat.New(client),
		Player:     &relaxation.Player{},
		scheduler:  timer.Real{},
	}, nil
}

// Route resolves path for the current session.
func (a *App) Route(path string) Route {
	return Resolve(path, a.Session)
}

func (a *App) Breathing(observer func(breathing.State)) *breathing.Guide {
	return breathing.New(a.scheduler, observer)
}

func (a *App) MemoryGame() *memorygame.Game {
	return memorygame.New(nil, nil, a.scheduler)
}

func (a *App) AdminReport(ctx context.Context) admin.Report {
	return admin.Load(ctx, a.API)
}

func (a *App) Close() error {
	a.Player.Stop()
	return a.Store.Close()
}

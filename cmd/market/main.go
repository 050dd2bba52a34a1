// cmd/market/main.go
//
// Entry point for the market TUI.
//
// Flow:
// 1. Initialize the .market folder in the working directory
// 2. Load the project config and the store catalog
// 3. Load the shopper state from disk
// 4. Launch the TUI

package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cheongnyamri/market/internal/catalog"
	"github.com/cheongnyamri/market/internal/config"
	"github.com/cheongnyamri/market/internal/journal"
	"github.com/cheongnyamri/market/internal/market"
	"github.com/cheongnyamri/market/internal/router"
	"github.com/cheongnyamri/market/internal/storage"
	"github.com/cheongnyamri/market/internal/tui"
)

func main() {
	cwd, err := os.Getwd()
	if err != nil {
		fail("working directory: %v", err)
	}

	if err := config.InitMarketDir(cwd); err != nil {
		fail("initializing .market directory: %v", err)
	}
	cfg, err := config.NewConfig(cwd)
	if err != nil {
		fail("loading config: %v", err)
	}

	stores, err := catalog.Load(cfg.CatalogPath())
	if err != nil {
		fail("loading catalog: %v", err)
	}

	gw, err := storage.NewFileGateway(cfg.StateDir())
	if err != nil {
		fail("opening state store: %v", err)
	}
	state := market.NewState(gw)
	if err := state.Load(); err != nil {
		fail("loading shopper state: %v", err)
	}

	jr, err := journal.Open(cfg.JournalPath())
	if err != nil {
		// The journal is a convenience; the app runs without it.
		fmt.Fprintf(os.Stderr, "warning: journal unavailable: %v\n", err)
		jr = nil
	}
	jr.Action("세션 시작: 가게 %d곳, 장바구니 %d건", len(stores), state.Cart.TotalItems())

	app := tui.NewApp(state, jr)
	r := router.New(state, stores, gw, app,
		router.WithJournal(jr),
		router.WithMapURLs(cfg.DefaultMapURL(), cfg.MapURLOverride),
	)
	app.SetRouter(r)
	if err := r.Start(); err != nil {
		fail("starting router: %v", err)
	}

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fail("running TUI: %v", err)
	}
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// Package platform finds games owned through distribution clients and hands
// launch, install and uninstall requests back to those clients.
package platform

import (
	"context"
	"errors"
	"log/slog"

	"github.com/blackwell-systems/gamedock/internal/catalog"
)

var (
	// ErrUnsupported is returned when a handler cannot perform an action.
	ErrUnsupported = errors.New("not supported by this platform")
	// ErrNotInstalled is returned when launching a game with no install
	// route.
	ErrNotInstalled = errors.New("game is not installed")
	// ErrNoLaunchCommand is returned when a game has nothing to run.
	ErrNoLaunchCommand = errors.New("game has no launch command")
)

// Options locates each client's data on disk.
type Options struct {
	SteamRoot    string
	LegendaryDir string
	HeroicDir    string
	ItchDB       string
	CustomDir    string
	Logger       *slog.Logger
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.New(slog.DiscardHandler)
}

// Handler is one distribution client.
type Handler interface {
	Platform() catalog.Platform
	// Scan returns every game the client knows about. A client that is not
	// present on this machine returns no records and no error.
	Scan(ctx context.Context, opts Options) ([]catalog.Record, error)
	Launch(g *catalog.Game) error
	Install(g *catalog.Game) error
	Uninstall(g *catalog.Game) error
	IconURL(g *catalog.Game) string
	OpenClient() error
}

// Registry holds the handlers compiled into this build.
type Registry struct {
	handlers map[catalog.Platform]Handler
	order    []catalog.Platform
}

// NewRegistry registers hs in order. A later handler for the same platform
// replaces an earlier one.
func NewRegistry(hs ...Handler) *Registry {
	r := &Registry{handlers: make(map[catalog.Platform]Handler)}
	for _, h := range hs {
		r.Register(h)
	}
	return r
}

// Default returns a registry with every built-in handler.
func Default(run Runner) *Registry {
	return NewRegistry(
		NewSteam(run),
		NewEpic(run),
		NewGOG(run),
		NewItch(run),
		NewCustom(run),
	)
}

// Register adds or replaces a handler.
func (r *Registry) Register(h Handler) {
	p := h.Platform()
	if _, exists := r.handlers[p]; !exists {
		r.order = append(r.order, p)
	}
	r.handlers[p] = h
}

// Handler returns the handler for p.
func (r *Registry) Handler(p catalog.Platform) (Handler, bool) {
	h, ok := r.handlers[p]
	return h, ok
}

// Handlers returns every handler in registration order.
func (r *Registry) Handlers() []Handler {
	out := make([]Handler, 0, len(r.order))
	for _, p := range r.order {
		out = append(out, r.handlers[p])
	}
	return out
}

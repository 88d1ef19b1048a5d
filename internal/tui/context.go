// Package tui is the terminal front end: the bubbletea model, the view
// renderer driven by the render scheduler, and the wiring between editor
// state, modals, notifications, and the backend client.
package tui

import (
	"github.com/rs/zerolog"

	"github.com/inkwell-sh/inkwell/internal/api"
	"github.com/inkwell-sh/inkwell/internal/core/config"
	"github.com/inkwell-sh/inkwell/internal/core/events"
	"github.com/inkwell-sh/inkwell/internal/core/notify"
	"github.com/inkwell-sh/inkwell/internal/core/parts"
	"github.com/inkwell-sh/inkwell/internal/core/render"
	appeditor "github.com/inkwell-sh/inkwell/internal/editor"
	"github.com/inkwell-sh/inkwell/internal/tui/modal"
	"github.com/inkwell-sh/inkwell/internal/tui/toast"
)

// Part is a lazily-constructed UI component.
type Part interface {
	View(width, height int) string
}

// AppContext carries every shared collaborator, passed explicitly to
// components at construction. There is no global bus: each component gets
// the handles it needs from here.
type AppContext struct {
	Config        *config.Config
	Events        *events.Registry
	Scheduler     *render.Scheduler
	Modals        *modal.Manager
	Notifications *notify.Store
	Toasts        *toast.Controller
	State         *appeditor.State
	Client        api.Client
	Parts         *parts.Registry[Part]
	Dispatch      *Dispatcher
	Log           zerolog.Logger

	renderView func()
}

// NewAppContext wires the shared collaborators together. The render function
// is attached later by the model via SetRenderFunc, before the first render
// request.
func NewAppContext(cfg *config.Config, client api.Client, log zerolog.Logger) *AppContext {
	ctx := &AppContext{
		Config:   cfg,
		Events:   events.NewRegistry(),
		Client:   client,
		Parts:    parts.NewRegistry[Part](),
		Dispatch: NewDispatcher(),
		Log:      log.With().Str("component", "tui").Logger(),
	}

	ctx.Scheduler = render.NewScheduler(ctx.Events, func() {
		if ctx.renderView != nil {
			ctx.renderView()
		}
	})
	ctx.Modals = modal.NewManager(ctx.Scheduler)
	ctx.Notifications = notify.NewStore(ctx.Events, ctx.Scheduler)
	ctx.Toasts = toast.NewController(
		ctx.Events,
		ctx.Notifications,
		ctx.Scheduler,
		cfg.TUI.ToastTTL(),
		cfg.TUI.DisableHoverPause,
	)
	ctx.State = appeditor.NewState(ctx.Events, appeditor.Generic())

	events.RegisterDebugLogger(ctx.Events, ctx.Log)

	return ctx
}

// SetRenderFunc attaches the function each render pass executes.
func (c *AppContext) SetRenderFunc(fn func()) {
	c.renderView = fn
}

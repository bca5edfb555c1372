package meta

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/emberlaunch/launchersync/internal/events"
	"github.com/emberlaunch/launchersync/internal/settings"
)

// PropertyFetcher is the download side of the refresh workflow. PropertyClient
// implements it; tests substitute their own.
type PropertyFetcher interface {
	DownloadProperties(ctx context.Context) (map[string]string, error)
	URL() string
}

// Controller binds the settings form model to the store and the meta server.
//
// Field edits, Load, and Apply are synchronous. The only asynchronous
// operation is Refresh, which runs at most one properties download at a time.
// The in-flight flag guards against a second download; every store and form
// model write, including the one made by the refresh goroutine when it
// applies the document, is serialized under the controller's lock. Each
// accepted Refresh publishes exactly one outcome event, and the controller is
// back to idle by the time that event is visible.
type Controller struct {
	store settings.Store
	fetch PropertyFetcher
	bus   *events.Bus

	mu       sync.Mutex
	fields   settings.Fields
	inFlight atomic.Bool
}

// NewController loads the form model from the store and returns a controller
// ready to edit, apply, and refresh it.
func NewController(store settings.Store, fetch PropertyFetcher, bus *events.Bus) *Controller {
	return &Controller{
		store:  store,
		fetch:  fetch,
		bus:    bus,
		fields: settings.Load(store),
	}
}

// Fields returns a copy of the current form model.
func (c *Controller) Fields() settings.Fields {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fields
}

// SetFields replaces the form model with edited values. Nothing is persisted
// until Apply.
func (c *Controller) SetFields(f settings.Fields) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fields = f
}

// Reload discards the form model and re-reads it from the store.
func (c *Controller) Reload() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fields = settings.Load(c.store)
}

// Apply flushes the form model to the store and announces the write.
func (c *Controller) Apply() {
	c.mu.Lock()
	settings.Apply(c.fields, c.store)
	c.mu.Unlock()

	if c.bus != nil {
		c.bus.PublishSettingsApplied(settings.AllKeys)
	}
}

// InFlight reports whether a properties download is currently running.
func (c *Controller) InFlight() bool {
	return c.inFlight.Load()
}

// Refresh starts a properties download unless one is already in flight, and
// reports whether a download was started. A rejected trigger has no
// observable effect: no event fires for it and the running download is not
// disturbed.
//
// On success the recognized properties are applied to the store, the form
// model is reloaded to pick them up, and a succeeded event carries the
// applied map. On failure the form model is left untouched and a failed
// event carries the reason.
func (c *Controller) Refresh(ctx context.Context) bool {
	if !c.inFlight.CompareAndSwap(false, true) {
		return false
	}

	go c.runRefresh(ctx)
	return true
}

func (c *Controller) runRefresh(ctx context.Context) {
	doc, err := c.fetch.DownloadProperties(ctx)
	if err != nil {
		c.inFlight.Store(false)
		if c.bus != nil {
			c.bus.PublishPropertiesFailed(c.fetch.URL(), err.Error())
		}
		return
	}

	c.mu.Lock()
	applied := ApplyProperties(doc, c.store)
	c.fields = settings.Load(c.store)
	c.mu.Unlock()

	c.inFlight.Store(false)
	if c.bus != nil {
		c.bus.PublishPropertiesSucceeded(applied)
	}
}

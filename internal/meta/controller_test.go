package meta

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/emberlaunch/launchersync/internal/events"
	"github.com/emberlaunch/launchersync/internal/settings"
)

type fakeFetcher struct {
	doc   map[string]string
	err   error
	calls atomic.Int32

	// When set, DownloadProperties signals started and then blocks until
	// release is closed. Lets tests hold the controller in flight.
	started chan struct{}
	release chan struct{}
}

func (f *fakeFetcher) DownloadProperties(ctx context.Context) (map[string]string, error) {
	f.calls.Add(1)
	if f.started != nil {
		close(f.started)
	}
	if f.release != nil {
		<-f.release
	}
	return f.doc, f.err
}

func (f *fakeFetcher) URL() string {
	return "https://meta.example.com/v1/properties.json"
}

func waitEvent(t *testing.T, ch <-chan events.Event) events.Event {
	t.Helper()
	select {
	case ev := <-ch:
		return ev
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for event")
		return nil
	}
}

func TestControllerRefreshSuccess(t *testing.T) {
	store := settings.NewMemStore()
	fetch := &fakeFetcher{doc: map[string]string{
		settings.KeyMetaURLOverride: "http://meta.example.com/v1",
		"UnknownProperty":           "ignored",
	}}
	bus := events.NewBus(10)
	defer bus.Close()
	outcome := bus.Subscribe(events.EventPropertiesSucceeded)

	ctrl := NewController(store, fetch, bus)

	if !ctrl.Refresh(context.Background()) {
		t.Fatal("Refresh should start when idle")
	}

	ev, ok := waitEvent(t, outcome).(*events.PropertiesSucceededEvent)
	if !ok {
		t.Fatal("expected PropertiesSucceededEvent")
	}

	want := "https://meta.example.com/v1/"
	if ev.Applied[settings.KeyMetaURLOverride] != want {
		t.Errorf("expected normalized applied value %q, got %q", want, ev.Applied[settings.KeyMetaURLOverride])
	}
	if _, found := ev.Applied["UnknownProperty"]; found {
		t.Error("unknown property should not be reported as applied")
	}
	if got := store.Get(settings.KeyMetaURLOverride); got != want {
		t.Errorf("expected store value %q, got %q", want, got)
	}
	if got := ctrl.Fields().MetaURL; got != want {
		t.Errorf("expected form model reloaded with %q, got %q", want, got)
	}
	if ctrl.InFlight() {
		t.Error("controller should be idle after success")
	}
}

func TestControllerRefreshFailure(t *testing.T) {
	store := settings.NewMemStore()
	store.Set(settings.KeyMetaURLOverride, "https://meta.example.com/v1/")

	fetch := &fakeFetcher{err: errors.New("network error")}
	bus := events.NewBus(10)
	defer bus.Close()
	outcome := bus.Subscribe(events.EventPropertiesFailed)

	ctrl := NewController(store, fetch, bus)
	before := ctrl.Fields()

	if !ctrl.Refresh(context.Background()) {
		t.Fatal("Refresh should start when idle")
	}

	ev, ok := waitEvent(t, outcome).(*events.PropertiesFailedEvent)
	if !ok {
		t.Fatal("expected PropertiesFailedEvent")
	}

	if ev.Reason != "network error" {
		t.Errorf("expected reason %q, got %q", "network error", ev.Reason)
	}
	if ev.URL != fetch.URL() {
		t.Errorf("expected document URL %q, got %q", fetch.URL(), ev.URL)
	}
	if ctrl.Fields() != before {
		t.Error("form model must be unchanged after a failed refresh")
	}
	if ctrl.InFlight() {
		t.Error("controller should be idle after failure")
	}
}

func TestControllerRefreshWhileInFlight(t *testing.T) {
	store := settings.NewMemStore()
	fetch := &fakeFetcher{
		doc:     map[string]string{},
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	bus := events.NewBus(10)
	defer bus.Close()
	outcome := bus.SubscribeAll()

	ctrl := NewController(store, fetch, bus)

	if !ctrl.Refresh(context.Background()) {
		t.Fatal("first Refresh should start")
	}
	<-fetch.started

	if !ctrl.InFlight() {
		t.Error("controller should report in flight")
	}
	if ctrl.Refresh(context.Background()) {
		t.Error("second Refresh while in flight should be a no-op")
	}

	close(fetch.release)
	waitEvent(t, outcome)

	if got := fetch.calls.Load(); got != 1 {
		t.Errorf("expected exactly one download, got %d", got)
	}

	// Exactly one outcome: nothing else may arrive for the rejected trigger.
	select {
	case ev := <-outcome:
		t.Fatalf("unexpected second outcome event %q", ev.Type())
	case <-time.After(50 * time.Millisecond):
	}
}

func TestControllerRefreshAgainAfterOutcome(t *testing.T) {
	store := settings.NewMemStore()
	fetch := &fakeFetcher{doc: map[string]string{}}
	bus := events.NewBus(10)
	defer bus.Close()
	outcome := bus.Subscribe(events.EventPropertiesSucceeded)

	ctrl := NewController(store, fetch, bus)

	if !ctrl.Refresh(context.Background()) {
		t.Fatal("first Refresh should start")
	}
	waitEvent(t, outcome)

	if !ctrl.Refresh(context.Background()) {
		t.Error("Refresh should be accepted again once idle")
	}
	waitEvent(t, outcome)

	if got := fetch.calls.Load(); got != 2 {
		t.Errorf("expected two downloads, got %d", got)
	}
}

func TestControllerApplyDuringRefresh(t *testing.T) {
	// Apply from the caller's goroutine races the refresh goroutine's
	// document apply; both must go through the controller's lock. Run with
	// -race to catch regressions.
	store := settings.NewMemStore()
	fetch := &fakeFetcher{doc: map[string]string{
		settings.KeyMetaURLOverride: "http://meta.example.com/v1",
	}}
	bus := events.NewBus(64)
	defer bus.Close()
	outcome := bus.Subscribe(events.EventPropertiesSucceeded)

	ctrl := NewController(store, fetch, bus)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 50; i++ {
			f := ctrl.Fields()
			f.ResourceURL = "https://resources.example.com/"
			ctrl.SetFields(f)
			ctrl.Apply()
		}
	}()

	for i := 0; i < 50; i++ {
		if ctrl.Refresh(context.Background()) {
			waitEvent(t, outcome)
		}
	}
	<-done

	// One last refresh after the edits have stopped pins the expected value.
	if !ctrl.Refresh(context.Background()) {
		t.Fatal("final refresh should start")
	}
	waitEvent(t, outcome)

	want := "https://meta.example.com/v1/"
	if got := store.Get(settings.KeyMetaURLOverride); got != want {
		t.Errorf("expected store value %q, got %q", want, got)
	}
}

func TestControllerApplyPublishesAndPersists(t *testing.T) {
	store := settings.NewMemStore()
	bus := events.NewBus(10)
	defer bus.Close()
	applied := bus.Subscribe(events.EventSettingsApplied)

	ctrl := NewController(store, &fakeFetcher{}, bus)

	f := ctrl.Fields()
	f.ResourceURL = "http://resources.example.com"
	ctrl.SetFields(f)
	ctrl.Apply()

	waitEvent(t, applied)

	want := "https://resources.example.com/"
	if got := store.Get(settings.KeyResourceURLOverride); got != want {
		t.Errorf("expected %q in store, got %q", want, got)
	}
}

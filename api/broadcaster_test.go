package api

import (
	"testing"
	"time"

	"github.com/adrenoasm/a2xx/service"
)

func TestBroadcasterDeliversToMatchingRunID(t *testing.T) {
	b := NewBroadcaster()
	defer b.Close()

	sub := b.Subscribe("run-1", nil)
	defer b.Unsubscribe(sub)

	time.Sleep(10 * time.Millisecond) // let register land
	b.Broadcast(BroadcastEvent{Type: EventTypeDone, RunID: "run-1", Count: 3})
	b.Broadcast(BroadcastEvent{Type: EventTypeDone, RunID: "run-2", Count: 9})

	select {
	case ev := <-sub.Channel:
		if ev.RunID != "run-1" || ev.Count != 3 {
			t.Errorf("unexpected event: %+v", ev)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for matching event")
	}

	select {
	case ev := <-sub.Channel:
		t.Fatalf("received unexpected event for other run: %+v", ev)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestBroadcasterFiltersByEventType(t *testing.T) {
	b := NewBroadcaster()
	defer b.Close()

	sub := b.Subscribe("", []EventType{EventTypeDone})
	defer b.Unsubscribe(sub)

	time.Sleep(10 * time.Millisecond)
	b.Broadcast(BroadcastEvent{Type: EventTypeResolved, Count: 1})
	b.Broadcast(BroadcastEvent{Type: EventTypeDone, Count: 2})

	select {
	case ev := <-sub.Channel:
		if ev.Type != EventTypeDone {
			t.Errorf("expected only done events, got %v", ev.Type)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestBroadcasterForwardRelaysServiceEvents(t *testing.T) {
	b := NewBroadcaster()
	defer b.Close()

	sub := b.Subscribe("run-x", nil)
	defer b.Unsubscribe(sub)
	time.Sleep(10 * time.Millisecond)

	events := make(chan service.Event, 4)
	events <- service.Event{Phase: service.PhaseResolved, Count: 1}
	events <- service.Event{Phase: service.PhaseDone, Count: 2, Warnings: []string{"odd clause count"}}
	close(events)

	done := make(chan struct{})
	go func() {
		b.Forward("run-x", events)
		close(done)
	}()

	var got []BroadcastEvent
	for i := 0; i < 2; i++ {
		select {
		case ev := <-sub.Channel:
			got = append(got, ev)
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for forwarded event")
		}
	}
	<-done

	if len(got) != 2 {
		t.Fatalf("expected 2 forwarded events, got %d", len(got))
	}
	if got[0].Type != EventType(service.PhaseResolved) {
		t.Errorf("expected first event phase resolved, got %v", got[0].Type)
	}
	if got[1].Type != EventType(service.PhaseDone) || len(got[1].Warnings) != 1 {
		t.Errorf("expected second event done with 1 warning, got %+v", got[1])
	}
}

func TestSubscriptionCount(t *testing.T) {
	b := NewBroadcaster()
	defer b.Close()

	if b.SubscriptionCount() != 0 {
		t.Fatalf("expected 0 subscriptions initially, got %d", b.SubscriptionCount())
	}

	sub := b.Subscribe("", nil)
	time.Sleep(10 * time.Millisecond)
	if b.SubscriptionCount() != 1 {
		t.Errorf("expected 1 subscription, got %d", b.SubscriptionCount())
	}

	b.Unsubscribe(sub)
	time.Sleep(10 * time.Millisecond)
	if b.SubscriptionCount() != 0 {
		t.Errorf("expected 0 subscriptions after unsubscribe, got %d", b.SubscriptionCount())
	}
}

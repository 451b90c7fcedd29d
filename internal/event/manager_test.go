package event

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestListenerReceivesEmittedEvent(t *testing.T) {
	received := make(chan interface{}, 1)
	eventType := Type("manager_test.receive")

	AddEventListener(eventType, func(msg interface{}) {
		received <- msg
	})

	EmitEvent(eventType, "payload")

	select {
	case msg := <-received:
		assert.Equal(t, "payload", msg)
	case <-time.After(time.Second):
		t.Fatal("event was not delivered")
	}
}

func TestListenerIgnoresOtherEventTypes(t *testing.T) {
	received := make(chan interface{}, 1)

	AddEventListener(Type("manager_test.wanted"), func(msg interface{}) {
		received <- msg
	})

	EmitEvent(Type("manager_test.unwanted"), "payload")

	select {
	case <-received:
		t.Fatal("listener received an event of another type")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestAllMatchingListenersAreNotified(t *testing.T) {
	first := make(chan interface{}, 1)
	second := make(chan interface{}, 1)
	eventType := Type("manager_test.fanout")

	AddEventListener(eventType, func(msg interface{}) { first <- msg })
	AddEventListener(eventType, func(msg interface{}) { second <- msg })

	EmitEvent(eventType, 42)

	for _, ch := range []chan interface{}{first, second} {
		select {
		case msg := <-ch:
			assert.Equal(t, 42, msg)
		case <-time.After(time.Second):
			t.Fatal("event was not fanned out to every listener")
		}
	}
}

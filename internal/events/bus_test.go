package events

import (
	"encoding/json"
	"testing"
)

func TestBusDeliversInOrder(t *testing.T) {
	bus := NewBus()

	var got []string
	if err := bus.Subscribe(TopicCheckoutState, func(e Event) { got = append(got, "a:"+e.Payload.(string)) }); err != nil {
		t.Fatal(err)
	}
	if err := bus.Subscribe(TopicCheckoutState, func(e Event) { got = append(got, "b:"+e.Payload.(string)) }); err != nil {
		t.Fatal(err)
	}

	bus.Publish(TopicCheckoutState, "PaymentOpen")
	bus.Publish(TopicCartChanged, "ignored")

	want := []string{"a:PaymentOpen", "b:PaymentOpen"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestBusRejectsNonFunc(t *testing.T) {
	bus := NewBus()
	if err := bus.bus.Subscribe(TopicCartChanged, "not a func"); err == nil {
		t.Fatal("expected error")
	}
}

func TestForwardedEventJSON(t *testing.T) {
	raw, err := json.Marshal(forwardedEvent{Event: Event{Topic: TopicSaleCompleted, Payload: map[string]string{"receipt": "RCP-7"}}, Terminal: "till-1"})
	if err != nil {
		t.Fatal(err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded["event_type"] != TopicSaleCompleted || decoded["terminal"] != "till-1" {
		t.Fatalf("decoded = %v", decoded)
	}
}

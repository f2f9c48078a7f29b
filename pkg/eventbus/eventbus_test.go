package eventbus

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/amarillaRodrigo/sigeled-own-sub002/pkg/logging"
)

type args struct {
	data interface{}
}

func TestPublisher_Publish_NoSubscribers(t *testing.T) {
	type otherArgs struct {
		data interface{}
	}
	logBuffer := bytes.Buffer{}
	log := logrus.New()
	log.SetOutput(&logBuffer)
	log.SetLevel(logrus.WarnLevel)
	publisher := NewEventPublisher(log)
	publisher.Subscribe(func(e *args) {
		t.Error("should not be called")
	})
	publisher.Publish(&otherArgs{
		data: "test",
	})

	if output := logBuffer.String(); output == "" {
		t.Error("should have logged")
	} else if !strings.Contains(output, "no matching subscribers") {
		t.Errorf("should have contained no matching subscribers but got: %q", output)
	}
}

func TestPublisher_Subscribe(t *testing.T) {
	publisher := NewEventPublisher(logging.ConsoleLogger(logrus.WarnLevel))
	called := false
	var data interface{}
	publisher.Subscribe(func(e *args) {
		called = true
		data = e.data
	})
	publisher.Publish(&args{
		data: "test",
	})
	if !called {
		t.Error("should be called")
	}
	if data != "test" {
		t.Errorf("expected: %v, got: %v", "test", data)
	}
}

func TestPublisher_Unsubscribe(t *testing.T) {
	publisher := NewEventPublisher(logging.ConsoleLogger(logrus.PanicLevel))
	handler := func(e *args) {
		t.Error("should not be called after unsubscribe")
	}
	publisher.Subscribe(handler)
	if publisher.SubscribersCount() != 1 {
		t.Fatalf("expected 1 subscriber, got %d", publisher.SubscribersCount())
	}
	publisher.Unsubscribe(handler)
	if publisher.SubscribersCount() != 0 {
		t.Fatalf("expected 0 subscribers, got %d", publisher.SubscribersCount())
	}
}

func TestPublisher_InterfaceParams(t *testing.T) {
	publisher := NewEventPublisher(logging.ConsoleLogger(logrus.PanicLevel))
	var got interface{}
	publisher.Subscribe(func(e interface{}) {
		got = e
	})
	publisher.Publish("hello")
	if got != "hello" {
		t.Errorf("expected: %v, got: %v", "hello", got)
	}
}

func TestMatchSignature(t *testing.T) {
	handler := func(e *args) {}
	if !MatchSignature(handler, []interface{}{&args{}}) {
		t.Error("expected handler to match its own argument type")
	}
	if MatchSignature(handler, []interface{}{"string"}) {
		t.Error("expected mismatch on incompatible type")
	}
	if MatchSignature(handler, []interface{}{&args{}, &args{}}) {
		t.Error("expected mismatch on arity")
	}
	if MatchSignature("not a func", []interface{}{&args{}}) {
		t.Error("expected non-func handler to never match")
	}
}

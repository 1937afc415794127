package state

import (
	"testing"
	"time"

	"github.com/openfoodshare/foodgate/internal/gateway"
)

func TestGetOrCreateSessionReusesExisting(t *testing.T) {
	gw := gateway.New(nil, time.Minute)
	t.Cleanup(func() { CloseSession("test-session") })

	first := GetOrCreateSession("test-session", gw)
	second := GetOrCreateSession("test-session", nil)

	if first != second {
		t.Error("expected the same session for the same id")
	}
	if second.Gateway != gw {
		t.Error("expected the original gateway to be retained")
	}
}

func TestGetOrCreateSessionGeneratesID(t *testing.T) {
	gw := gateway.New(nil, time.Minute)

	s := GetOrCreateSession("", gw)
	t.Cleanup(func() { CloseSession(s.ID) })

	if s.ID == "" {
		t.Error("expected a generated session id")
	}
}

func TestCloseSession(t *testing.T) {
	gw := gateway.New(nil, time.Minute)

	GetOrCreateSession("closing", gw)
	CloseSession("closing")

	if GetSession("closing") != nil {
		t.Error("expected session to be gone after close")
	}
}

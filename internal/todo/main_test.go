package todo

import (
	"testing"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		// Keep-alive connections of the shared transport used against httptest.
		goleak.IgnoreAnyFunction("net/http.(*persistConn).readLoop"),
		goleak.IgnoreAnyFunction("net/http.(*persistConn).writeLoop"),
		// The keyring's secret service backend connects to the session bus at init.
		goleak.IgnoreAnyFunction("github.com/godbus/dbus.(*Conn).inWorker"),
	)
}

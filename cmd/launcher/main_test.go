package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/zalando/go-keyring"
)

// unreachableRemote returns the URL of a server that is already closed
func unreachableRemote(t *testing.T) string {
	t.Helper()
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	return url
}

func withFlags(t *testing.T, dataDir, remote string) {
	t.Helper()
	keyring.MockInit()

	oldDir, oldRemote, oldOutput := flagDataDir, flagRemote, flagOutput
	flagDataDir, flagRemote, flagOutput = dataDir, remote, "text"
	t.Cleanup(func() {
		flagDataDir, flagRemote, flagOutput = oldDir, oldRemote, oldOutput
	})
}

func TestOpenAppWithoutReachableBackend(t *testing.T) {
	withFlags(t, t.TempDir(), unreachableRemote(t))

	a, _, err := openApp(context.Background())
	if err != nil {
		t.Fatalf("openApp() error = %v", err)
	}
	defer a.Close()

	if err := a.Settings.Set("preferences.ram", "6144"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if got, err := a.Settings.Get("preferences.ram"); err != nil || got != "6144" {
		t.Errorf("Get() = %q, %v", got, err)
	}
	if _, err := a.Activity.List(0, "", ""); err != nil {
		t.Errorf("List() error = %v", err)
	}
}

func TestOpenRegistriesReportsUnreachableBackend(t *testing.T) {
	withFlags(t, t.TempDir(), unreachableRemote(t))

	a, _, err := openRegistries(context.Background())
	if err == nil {
		a.Close()
		t.Fatal("expected an error for an unreachable backend")
	}
}

func TestOpenRegistriesLocal(t *testing.T) {
	withFlags(t, t.TempDir(), "")

	a, _, err := openRegistries(context.Background())
	if err != nil {
		t.Fatalf("openRegistries() error = %v", err)
	}
	defer a.Close()

	if len(a.Instances.List()) != 0 || len(a.Accounts.Accounts()) != 0 {
		t.Error("expected empty registries in a fresh data dir")
	}
}

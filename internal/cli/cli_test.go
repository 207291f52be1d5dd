package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/studiowebux/launcher/internal/types"
	"gopkg.in/yaml.v3"
)

var sampleInstances = []types.Instance{
	{Identifier: "survival", Name: "Survival", Loader: "fabric", Version: "1.21.10"},
	{Identifier: "pvp", Name: "PvP", Loader: "vanilla", Version: "1.8.9", Icon: "data:image/png;base64,AA=="},
}

func TestNewOutputFormat(t *testing.T) {
	for _, f := range []string{"", "text", "json", "yaml"} {
		if _, err := NewOutput(&bytes.Buffer{}, f); err != nil {
			t.Errorf("NewOutput(%q) error = %v", f, err)
		}
	}
	if _, err := NewOutput(&bytes.Buffer{}, "xml"); err == nil {
		t.Error("xml accepted")
	}
}

func TestInstancesText(t *testing.T) {
	var buf bytes.Buffer
	out, _ := NewOutput(&buf, FormatText)

	if err := out.Instances(sampleInstances); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %d:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "NAME:") || !strings.Contains(lines[1], "survival") || !strings.Contains(lines[2], "yes") {
		t.Errorf("unexpected table:\n%s", buf.String())
	}
}

func TestInstancesEmpty(t *testing.T) {
	var buf bytes.Buffer
	out, _ := NewOutput(&buf, FormatText)
	out.Instances(nil)
	if !strings.Contains(buf.String(), "No instances") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestStructuredOutput(t *testing.T) {
	var buf bytes.Buffer
	out, _ := NewOutput(&buf, FormatJSON)
	if err := out.Instances(sampleInstances); err != nil {
		t.Fatal(err)
	}
	var decoded []types.Instance
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(decoded) != 2 || decoded[1].Identifier != "pvp" {
		t.Errorf("decoded = %+v", decoded)
	}

	buf.Reset()
	out, _ = NewOutput(&buf, FormatYAML)
	accounts := []types.AccountSummary{{UUID: "u1", Username: "Steve", IsActive: true}}
	if err := out.Accounts(accounts); err != nil {
		t.Fatal(err)
	}
	var decodedAccounts []types.AccountSummary
	if err := yaml.Unmarshal(buf.Bytes(), &decodedAccounts); err != nil {
		t.Fatal(err)
	}
	if len(decodedAccounts) != 1 || !decodedAccounts[0].IsActive {
		t.Errorf("decoded = %+v", decodedAccounts)
	}
}

func TestAccountsMarksActive(t *testing.T) {
	var buf bytes.Buffer
	out, _ := NewOutput(&buf, FormatText)
	out.Accounts([]types.AccountSummary{
		{UUID: "u1", Username: "Steve"},
		{UUID: "u2", Username: "Alex", IsActive: true},
	})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 || !strings.HasPrefix(lines[2], "*") || strings.HasPrefix(lines[1], "*") {
		t.Errorf("unexpected table:\n%s", buf.String())
	}
}

func TestPrompter(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("\n  Creative  \ny\nno\n"), &out)

	name, err := p.Text("Name", "dirt hut society")
	if err != nil || name != "dirt hut society" {
		t.Errorf("empty answer = %q, %v", name, err)
	}
	name, _ = p.Text("Name", "")
	if name != "Creative" {
		t.Errorf("answer = %q", name)
	}
	if ok, _ := p.Confirm("Remove?"); !ok {
		t.Error("y should confirm")
	}
	if ok, _ := p.Confirm("Remove?"); ok {
		t.Error("no should not confirm")
	}
	if _, err := p.Text("Name", ""); !errors.Is(err, ErrCancelled) {
		t.Errorf("EOF error = %v", err)
	}
	if !strings.Contains(out.String(), "Name (dirt hut society): ") {
		t.Errorf("prompt output = %q", out.String())
	}
}

func TestPrompterLastLineWithoutNewline(t *testing.T) {
	p := NewPrompter(strings.NewReader("Steve"), &bytes.Buffer{})
	got, err := p.Text("Username", "")
	if err != nil || got != "Steve" {
		t.Errorf("Text() = %q, %v", got, err)
	}
}

func TestFieldsText(t *testing.T) {
	var buf bytes.Buffer
	out, _ := NewOutput(&buf, FormatText)

	err := out.Fields([]FieldValue{
		{Path: "preferences.ram", Label: "Allocated RAM (MB)", Tab: "preferences", Value: "4096"},
		{Path: "launcher.autoBoot", Label: "Automatically start on boot", Tab: "launcher", Value: "true"},
	})
	if err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %d:\n%s", len(lines), buf.String())
	}
	if !strings.Contains(lines[1], "4096") || !strings.Contains(lines[2], "launcher.autoBoot") {
		t.Errorf("unexpected table:\n%s", buf.String())
	}
}

func TestActivityText(t *testing.T) {
	var buf bytes.Buffer
	out, _ := NewOutput(&buf, FormatText)

	err := out.Activity([]types.ActivityEntry{
		{Timestamp: "2025-03-01T12:30:00Z", Level: "info", Source: "instance", Title: "Instance created"},
		{Timestamp: "2025-03-01T12:31:00Z", Level: "info", Source: "account", Title: "Account added", Description: "Signed in as Steve."},
	})
	if err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %d:\n%s", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], "SOURCE:") || !strings.Contains(lines[1], "instance") || !strings.Contains(lines[2], "account") {
		t.Errorf("unexpected table:\n%s", buf.String())
	}

	buf.Reset()
	if err := out.Activity(nil); err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(buf.String()) != "No notifications." {
		t.Errorf("empty output = %q", buf.String())
	}
}

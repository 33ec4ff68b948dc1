package jiracloud

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/zalando/go-keyring"

	"github.com/randalmurphal/jiracloud/config"
	"github.com/randalmurphal/jiracloud/jira"
)

// isolate points HOME at a temp dir, clears JIRA_* variables and swaps
// the keyring for an in-memory one.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, key := range config.ClientKeys {
		t.Setenv(EnvPrefix+strings.ToUpper(key), "")
	}
	keyring.MockInit()
	return home
}

func TestNewClient(t *testing.T) {
	home := isolate(t)

	dir := filepath.Join(home, ".config", "jiracloud-test")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		t.Fatal(err)
	}
	yaml := "cloud_domain: acme\nusername: dev@acme.io\ntimeout: 20s\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := config.NewTokenStore("jiracloud-test").SaveToken("acme", "dev@acme.io", "from-keyring"); err != nil {
		t.Fatalf("SaveToken() error = %v", err)
	}
	t.Setenv("JIRA_API_VERSION", "2")

	client, err := NewClient("jiracloud-test")
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	cfg := client.Config()
	if cfg.CloudDomain != "acme" || cfg.Username != "dev@acme.io" {
		t.Errorf("config = %+v", cfg)
	}
	if cfg.APIToken != "from-keyring" {
		t.Errorf("APIToken = %q, want keyring value", cfg.APIToken)
	}
	if cfg.APIVersion != 2 {
		t.Errorf("APIVersion = %d, want 2 from env", cfg.APIVersion)
	}
	if cfg.Timeout.String() != "20s" {
		t.Errorf("Timeout = %v, want 20s", cfg.Timeout)
	}
	if client.BaseURL() != "https://acme.atlassian.net" {
		t.Errorf("BaseURL() = %q", client.BaseURL())
	}
}

func TestNewClientUnconfigured(t *testing.T) {
	isolate(t)

	_, err := NewClient("jiracloud-empty")
	if !errors.Is(err, jira.ErrConfigDomainRequired) {
		t.Errorf("error = %v, want ErrConfigDomainRequired", err)
	}
}

package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/growthaccelerator/domainctl/config/domainctlcfg"
)

func runCommand(t *testing.T, args ...string) error {
	t.Helper()
	root := newRootCmd()
	root.SetContext(context.Background())
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	return root.Execute()
}

func TestCmdInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "domainctl.yml")

	if err := runCommand(t, "init", "-f", path); err != nil {
		t.Fatalf("init error = %v", err)
	}

	cfg, err := domainctlcfg.Load(path)
	if err != nil {
		t.Fatalf("load generated config: %v", err)
	}
	if cfg.Provider.Driver != "appsvc" {
		t.Errorf("generated driver = %q, want appsvc", cfg.Provider.Driver)
	}
	if cfg.Binding.CustomDomain == "" {
		t.Error("generated config has no custom domain placeholder")
	}

	if err := runCommand(t, "init", "-f", path); err == nil {
		t.Error("init over existing file expected error")
	}

	if err := runCommand(t, "init", "-f", path, "--force"); err != nil {
		t.Errorf("init --force error = %v", err)
	}
}

func TestCmdVersion(t *testing.T) {
	root := newRootCmd()
	root.SetContext(context.Background())
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"version"})
	if err := root.Execute(); err != nil {
		t.Fatalf("version error = %v", err)
	}
	if got := out.String(); got != "domainctl version latest\n" {
		t.Errorf("version output = %q", got)
	}
}

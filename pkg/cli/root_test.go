package cli

import (
	"testing"
)

func TestRootCommand(t *testing.T) {
	cmd := rootCmd()

	if cmd.Name != name {
		t.Errorf("expected command name %s, got %s", name, cmd.Name)
	}

	want := map[string]bool{"serve": false, "launch": false, "dump": false}
	for _, sub := range cmd.Commands {
		if _, ok := want[sub.Name]; ok {
			want[sub.Name] = true
		}
	}
	for n, found := range want {
		if !found {
			t.Errorf("expected subcommand %s to be registered", n)
		}
	}
}

func TestRootCommandGlobalFlags(t *testing.T) {
	cmd := rootCmd()

	found := false
	for _, f := range cmd.Flags {
		for _, n := range f.Names() {
			if n == "log-level" {
				found = true
			}
		}
	}
	if !found {
		t.Error("expected global --log-level flag")
	}
}

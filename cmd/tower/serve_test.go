package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// setServeFlags points the serve flags at a temp dir and restores them
// afterwards.
func setServeFlags(t *testing.T, sshAddr, wsAddr, hostKey string) {
	t.Helper()
	prev := []string{flagSSHAddr, flagWSAddr, flagHostKey, flagDBPath}
	flagSSHAddr, flagWSAddr, flagHostKey = sshAddr, wsAddr, hostKey
	flagDBPath = filepath.Join(t.TempDir(), "runs.db")
	t.Cleanup(func() {
		flagSSHAddr, flagWSAddr, flagHostKey, flagDBPath = prev[0], prev[1], prev[2], prev[3]
	})
}

func TestRunServeReturnsErrors(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, nil, 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		sshAddr string
		wsAddr  string
		hostKey string
		want    string
	}{
		{"nothing to serve", "", "", "", "nothing to serve"},
		{"bad host key dir", "127.0.0.1:0", "", filepath.Join(blocker, "host_key"), "creating ssh server"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			setServeFlags(t, tc.sshAddr, tc.wsAddr, tc.hostKey)
			err := runServe(nil, nil)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Errorf("runServe() = %v, expected an error containing %q", err, tc.want)
			}
		})
	}
}

package credential

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSetEnvFileVar(t *testing.T) {
	t.Run("rewrites only the matching line", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")
		original := "POAP_API_KEY=key1\nPOAP_ACCESS_TOKEN=old-token\nEVENTBRITE_API_KEY=eb1\n"
		if err := os.WriteFile(path, []byte(original), 0o600); err != nil {
			t.Fatal(err)
		}

		if err := SetEnvFileVar(path, "POAP_ACCESS_TOKEN", "tok123"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		got, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		want := "POAP_API_KEY=key1\nPOAP_ACCESS_TOKEN=tok123\nEVENTBRITE_API_KEY=eb1\n"
		if string(got) != want {
			t.Errorf("file mismatch:\n got: %q\nwant: %q", got, want)
		}
	})

	t.Run("appends when the key is absent", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")
		if err := os.WriteFile(path, []byte("POAP_API_KEY=key1\n"), 0o600); err != nil {
			t.Fatal(err)
		}

		if err := SetEnvFileVar(path, "POAP_ACCESS_TOKEN", "tok123"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		got, _ := os.ReadFile(path)
		want := "POAP_API_KEY=key1\nPOAP_ACCESS_TOKEN=tok123\n"
		if string(got) != want {
			t.Errorf("file mismatch:\n got: %q\nwant: %q", got, want)
		}
	})

	t.Run("errors on a missing file", func(t *testing.T) {
		err := SetEnvFileVar(filepath.Join(t.TempDir(), "nope.env"), "K", "v")
		if err == nil {
			t.Fatal("expected error")
		}
	})
}

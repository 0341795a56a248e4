package transcache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"testing"
)

func TestBuildKey_Deterministic(t *testing.T) {
	a := BuildKey(OpTextdomain, "", "de_DE", "myplugin", "/path/a.mo")
	b := BuildKey(OpTextdomain, "", "de_DE", "myplugin", "/path/a.mo")

	if a != b {
		t.Errorf("BuildKey is not deterministic: %q != %q", a, b)
	}

	// Pinned so a change of the derivation is noticed: it orphans every
	// entry in a shared store.
	want := "load_textdomain:" + hashOf("", "de_DE", "myplugin", "/path/a.mo")
	if a != want {
		t.Errorf("BuildKey() = %q, want %q", a, want)
	}
}

func TestBuildKey_Format(t *testing.T) {
	key := BuildKey(OpScriptTranslations, "salt", "de_DE", "file.json", "editor", "myplugin")

	prefix := OpScriptTranslations + ":"
	if !strings.HasPrefix(key, prefix) {
		t.Fatalf("key %q does not start with %q", key, prefix)
	}
	// SHA-256 = 64 hex chars
	if got := len(key) - len(prefix); got != 64 {
		t.Errorf("hash length = %d, want 64", got)
	}
}

func TestBuildKey_Sensitivity(t *testing.T) {
	base := []string{"salt", "de_DE", "/languages/a.json", "editor", "myplugin"}
	key := func(c []string) string {
		return BuildKey(OpScriptTranslations, c[0], c[1], c[2:]...)
	}
	baseKey := key(base)

	tests := []struct {
		name  string
		index int
		value string
	}{
		{name: "salt", index: 0, value: "other"},
		{name: "locale", index: 1, value: "de_AT"},
		{name: "file", index: 2, value: "/languages/b.json"},
		{name: "handle", index: 3, value: "admin"},
		{name: "domain", index: 4, value: "otherplugin"},
		{name: "empty salt", index: 0, value: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			changed := append([]string(nil), base...)
			changed[tt.index] = tt.value
			if key(changed) == baseKey {
				t.Errorf("changing %s did not change the key", tt.name)
			}
		})
	}
}

func TestBuildKey_ComponentBoundaries(t *testing.T) {
	a := BuildKey(OpTextdomain, "", "de_DE", "my", "plugin/a.mo")
	b := BuildKey(OpTextdomain, "", "de_DE", "myplugin", "/a.mo")
	if a == b {
		t.Error("moving characters between components must change the key")
	}
}

func TestBuildKey_OperationNamespaces(t *testing.T) {
	a := BuildKey(OpTextdomain, "", "de_DE", "x", "y")
	b := BuildKey(OpScriptTranslations, "", "de_DE", "x", "y")
	if a == b {
		t.Error("operations must not share keys")
	}
}

func TestEnvSalt(t *testing.T) {
	t.Setenv(SaltEnv, "")
	salt := EnvSalt(SaltEnv)
	if got := salt(); got != "" {
		t.Errorf("unset salt = %q, want empty", got)
	}

	t.Setenv(SaltEnv, "deploy-42")
	if got := salt(); got != "deploy-42" {
		t.Errorf("salt = %q, want %q: it must be read on every call", got, "deploy-42")
	}
}

func hashOf(parts ...string) string {
	var b strings.Builder
	for _, p := range parts {
		b.WriteString(p)
		b.WriteByte(0)
	}
	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}

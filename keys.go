package transcache

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
)

// Operation names prefix every cache key.
const (
	OpScriptTranslations = "load_script_translations"
	OpTextdomain         = "load_textdomain"
)

// SaltEnv is the environment variable holding the cache key salt.
const SaltEnv = "TRANSLATIONS_CACHE_KEY_SALT"

// BuildKey derives the cache key for an operation from the salt, the locale
// and the operation's identifying parts, in call order. Each component is
// NUL-terminated before hashing so that shifting characters between
// neighbouring components yields a different key.
func BuildKey(operation, salt, locale string, parts ...string) string {
	h := sha256.New()
	write := func(s string) {
		h.Write([]byte(s))
		h.Write([]byte{0})
	}
	write(salt)
	write(locale)
	for _, p := range parts {
		write(p)
	}
	return operation + ":" + hex.EncodeToString(h.Sum(nil))
}

// EnvSalt returns a salt source reading the named environment variable on
// every call. An unset variable yields the empty string.
func EnvSalt(name string) func() string {
	return func() string {
		return os.Getenv(name)
	}
}

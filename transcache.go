// Package transcache is a read-through cache for translation catalogs.
//
// It sits in front of a host's translation loading path and memoizes parsed
// results in a shared key/value store with jittered expiration. Two adapters
// are provided: ScriptTranslations for JSON script translation files and
// Textdomain for binary gettext (.mo) catalogs.
//
// Basic usage:
//
//	import (
//	    "github.com/wearerequired/transcache"
//	    "github.com/wearerequired/transcache/cache"
//	    "github.com/wearerequired/transcache/gettext"
//	)
//
//	func main() {
//	    c := cache.New(cache.NewInMemoryStore())
//	    l10n := transcache.NewL10n()
//
//	    td := transcache.NewTextdomain(c, gettext.NewMOParser(),
//	        transcache.NewTextdomainRegistry(), l10n)
//
//	    td.Filter(ctx, false, "myplugin", "/languages/myplugin-de_DE.mo", "de_DE")
//	    if catalog, ok := l10n.Get("myplugin"); ok {
//	        fmt.Println(catalog.Translate("Hello")) // Hallo
//	    }
//	}
//
// Cached entries are never invalidated when files change. Changing the value
// of the TRANSLATIONS_CACHE_KEY_SALT environment variable changes every
// derived key, orphaning old entries until they expire.
package transcache

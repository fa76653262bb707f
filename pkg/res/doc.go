// Package res resolves integer resource identifiers to typed resource values
// by scanning resource bundle directories of markup documents.
//
// # Overview
//
// A resource bundle is a directory tree laid out the Android way:
//
//	res/
//	  values/         strings, plurals, string arrays, colors, attributes
//	  values-fr/      localized values (loaded when the engine locale matches)
//	  layout*/        view documents, keyed by file name
//	  menu*/          menu documents
//	  drawable*/      images and markup drawables
//	  xml/            preference documents
//	  raw/            arbitrary files, opened by name
//
// Identifiers come from explicit [SymbolTable] values (loaded from aapt's
// R.txt or a symbols.toml file) registered in an [Index]. The [Engine] loads
// the platform bundle first and then every configured bundle in priority
// order; value resources loaded later shadow earlier ones for the same id.
// Localized value directories load after the defaults of every bundle, so a
// library's values-fr string beats the application's values/ string.
//
// # Lifecycle
//
// An [Engine] loads lazily: the first getter (or an explicit [Engine.Init])
// performs the full scan under a mutex, and every caller observes the fully
// initialized state afterwards. The stores are read-only from then on.
// A [Registry] caches one engine per symbol table so repeated construction
// is cheap:
//
//	reg := res.NewRegistry()
//	eng := reg.Engine(local, system, res.Config{ResourceDir: "res"})
//	title, err := eng.String(0x7f040000)
//
// # Errors
//
// Lookups that miss fail with a NOT_FOUND [errors.Error] naming the id;
// color lookups for unregistered ids return -1 and raw lookups return nil.
// Strict internationalization failures carry I18N_VIOLATION and are never
// wrapped by the initialization error.
package res

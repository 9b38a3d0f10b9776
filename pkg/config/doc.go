// Package config provides the key/value store that controllers read theme
// and page metadata from.
//
// # Store
//
// A [Store] maps string keys to arbitrary values and is safe for concurrent
// use. The controller layer relies on four well-known keys:
//
//   - [KeyEnvironment] ("app.env"): environment name; "prod" hides error details
//   - [KeyThemeName] ("theme.name"): active theme directory
//   - [KeyThemeLayoutPath] ("theme.layoutPath"): root directory of theme layouts
//   - [KeyMeta] ("meta"): a [Meta] value with the page title and description
//
// Reading a key that was never added returns [ErrKeyNotFound]:
//
//	name, err := config.String(store, config.KeyThemeName)
//	if config.IsNotFound(err) {
//	    // theme not configured
//	}
//
// # Request scope
//
// The application store is built once. Each request works on
// store.Clone(), so metadata set while handling one request never shows
// up in another. [Meta] implements [Cloner] so its Extra map is copied too.
//
// # Sources
//
// [Load] and [LoadFile] decode YAML (see the schema on [Load]).
// [FromRedis] reads a Redis hash of flat keys for settings managed outside
// the binary. Stores can be layered with [Store.Merge]:
//
//	base := config.MustLoadFile(assets, "config.yaml")
//	remote, err := config.FromRedis(ctx, client, "site:config")
//	if err == nil {
//	    base.Merge(remote)
//	}
package config

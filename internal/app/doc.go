// Package app contains the core application logic: the App struct, its
// configuration, and the publish-run lifecycle, decoupled from the CLI
// entrypoint.
package app

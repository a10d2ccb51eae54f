// Package cli is the cobra command tree of the field-survey client.
//
// Every command accepts the configuration flags declared by
// config.RegisterFlags. One-shot commands open the local store, do their work
// and wait for the background sync they triggered before exiting; the run
// command keeps the client alive with its scheduled sync and import inbox.
package cli

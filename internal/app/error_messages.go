// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used by the
// field-survey command line.
//
// All Msg* constants are human-readable message strings printed to the user
// when a command fails. Keeping them in one place ensures consistent wording
// across commands.
package app

const (
	// MsgInvalidDataProvided is printed when a payload or a --field argument
	// fails validation.
	MsgInvalidDataProvided = "invalid data provided"

	// MsgObservationNotFound is printed when no stored record matches the
	// given logical or remote id.
	MsgObservationNotFound = "observation not found"

	// MsgEmptyID is printed when a command that needs an id gets a blank one.
	MsgEmptyID = "no observation id provided"

	// MsgMalformedImport is printed when an import file is neither a JSON
	// array nor a JSON object.
	MsgMalformedImport = "import file is not a JSON array or object"

	// MsgLocalPersistence is printed when the local store cannot be read or
	// written. Nothing was synced in that case.
	MsgLocalPersistence = "local storage failure"

	// MsgRemoteUnavailable is printed when the remote API cannot be reached
	// for an operation that needs it right away.
	MsgRemoteUnavailable = "remote API unavailable, try again when online"

	// MsgRemoteRejected is printed when the remote API refuses a request.
	MsgRemoteRejected = "remote API rejected the request"

	// MsgInvalidConfig is printed when the merged configuration is invalid.
	MsgInvalidConfig = "invalid configuration"

	// MsgClipboardUnavailable is printed when the system clipboard cannot be
	// written.
	MsgClipboardUnavailable = "clipboard unavailable"
)

// Package remotetest provides an in-memory implementation of the remote
// observation API, served over HTTP with a chi router.
//
// It follows the contract of the document-store backend: ObjectId-shaped ids
// assigned on create, a version incremented on every update, 404 for unknown
// ids, 400 for updates addressed by a non-canonical id, and the legacy id
// migration endpoint. Health and per-route failures can
// be scripted, which makes it suitable for exercising sync passes end to end
// with httptest.
package remotetest

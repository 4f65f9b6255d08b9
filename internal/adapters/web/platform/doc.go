// Package platform implements the browser side of the session as seen from
// the server: depict ID encoding, the queue of command messages waiting to be
// sent to the browser, poll interval negotiation, the events the browser
// reports, and files the browser has selected for upload.
package platform

// Package component implements the server-side component tree.
//
// Every component embeds Base, which carries the presentation properties
// shared by all components (label, style ID, displayed, enabled, valid,
// notification, orientation, constraints) as bound properties, and the
// parent pointer. Behavior beyond that is expressed as small capability
// interfaces (Composite, Commitable, SequenceTransitionable, NotificationSink,
// Themeable) that concrete components implement where it applies, rather
// than through a deep type hierarchy.
//
// A component tree is confined to one session. Property mutation is safe for
// concurrent use, but structural changes and multi-step operations such as
// sequence transitions assume the session serializes event processing.
package component

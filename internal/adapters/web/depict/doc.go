// Package depict renders component trees as XHTML and turns browser events
// back into component mutations.
//
// Every depicted component gets a Depictor, created on first use from the
// factory registered for the most specific class in the component's class
// ancestry. A Renderer owns the depictors of one frame, tracks which
// components changed since they were last depicted, and renders either the
// whole page or patches for the changed subtrees.
package depict

// Package ui is the Bubble Tea front end of the practice dashboard.
//
// Core pieces:
//   - App: root model; owns the instance store, the widgets and the frame
//   - View: a modal or overlay with its own update and view (Elm-style)
//   - OverlayStack: modals such as the catalog picker and remove confirmation
//   - FocusManager: which module card receives keys
//   - KeyHandler: SPC-leader key sequences dispatched through a registry
//
// Every mutation of the collection is followed by a layout pass that projects
// the collection at the primary breakpoint and reconciles the result back into
// the store, so stored geometry is always resolved and compacted.
package ui

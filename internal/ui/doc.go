// Package ui is the terminal front end: the workspace dashboard, the studio
// frame and the primitives they are composed from.
//
// Core abstractions:
//   - View: a screen or region with its own update and render (Elm-style)
//   - Panel: a bounded region within a layout that hosts a View
//   - Layout: arranges panels and declares the focus order
//   - FocusManager: tracks and rotates focus across panels
//   - ViewStack: push/pop navigation, used by the editor panes
//   - Overlay: modal views such as the confirmation mask and notification log
//   - Bus: carries workflow port calls from any goroutine into Update
package ui

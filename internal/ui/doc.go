// Package ui implements the Berk Tools terminal interface on Bubble Tea.
//
// The Model moves between three screens:
//
//   - Sign-in: username and password form backed by auth.Login
//   - Home: a 3×3 launcher grid; the first slot opens EtymoDictionary
//   - EtymoDictionary: a Look Up tab (search, save) and a Saved tab
//     (filter, expand details, delete)
//
// All network work runs inside tea.Cmd functions that call the
// workflow package and hand back a fresh workflow.Snapshot in a flowMsg.
// The model renders from that snapshot only, so the UI never reads
// workflow state concurrently with an operation in flight.
//
// Word details are rendered as Markdown through glamour using the style
// paired with the active theme. Theme and last tab are persisted through
// the prefs package whenever they change.
package ui

// Package workflow implements the EtymoDictionary state machine.
//
// A Workflow owns the saved-words collection and four kinds of action slot:
//
//	Search   Idle -> Searching -> Result | Failed
//	Save     Idle -> Saving -> Idle        (one at a time)
//	Delete   per lemma, one in flight each
//	Expand   per lemma, detail fetched once and cached
//
// A call whose slot is busy returns ErrBusy and is otherwise ignored. There
// is no queueing and no cancellation beyond the caller's context.
//
// The collection changes only after the backend confirms a save or delete.
// Failures of every class (api.ErrAuthenticationRequired,
// api.ErrSessionExpired, api.ErrRequestFailed) are logged, turned into a
// Notice, and leave the collection as it was. Session failures also set
// Snapshot.SessionExpired until the next successful load or a call to
// ResumeSession after signing in again.
//
// # Snapshots
//
// Presenters read state through Snapshot, which returns deep copies in the
// same way the UI layer reads any shared state: take a snapshot, render it,
// never hold a reference.
//
// # Mirror
//
// After every load, save and delete the collection is written to a Mirror,
// but only once the collection is known: a save or delete made before the
// first load leaves the mirror untouched. Writes are serialized so the
// mirror always ends with the latest collection. The mirror is read only by LoadSaved when the backend is unreachable and
// nothing has been loaded yet; the snapshot is then marked Offline.
// StorageMirror keeps it as JSON under storage.KeySavedWords.
package workflow

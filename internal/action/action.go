// Package action defines the closed catalog of intents that drive the store.
//
// Every message flowing through the system — user-facing commands ("load the
// users") and the lifecycle events the orchestration layer derives from them
// (start, success, failure, end) — is one of the types in this package.
//
// WHY A MARKER INTERFACE?
// The reducer switches over these types exhaustively. Because the marker
// method is unexported, no other package can add a variant, so the catalog
// is closed: a new intent means a new type here and the compiler points at
// every switch that has to learn about it.
package action

// Action is the sealed intent type. The concrete variants live in
// users.go and orders.go, grouped by the API family that emits them.
type Action interface {
	isAction()
}

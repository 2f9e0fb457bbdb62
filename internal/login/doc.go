// Package login implements federated sign-in: the authorization code flow
// with PKCE against the providers registered in pkg/oauth.
//
// [Initiator.Start] stores a fresh state and verifier and returns the
// provider URL to redirect to. [Callback.Handle] validates the return trip,
// exchanges the code, fetches user info and hands it to a [Resolver], which
// links the identity to a local account or creates one.
//
// Callback failures are *[CallbackError] values tagged with a [Kind]. The
// kind is for logs and metrics only; callers show users one generic message.
package login

// Package authsession stores the state, provider and PKCE verifier of
// in-flight authorization requests.
//
// Each session is a single JSON record keyed by its state, so a reader sees
// either the whole session or nothing. Sessions expire through the backing
// cache's TTL and are removed by the callback after the first read.
package authsession

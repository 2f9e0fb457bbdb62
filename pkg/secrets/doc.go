// Package secrets resolves named secret payloads from a backing store.
//
// Three backends share the [Store] interface:
//
//   - [AWS] reads the SecretString of an AWS Secrets Manager secret
//   - [Env] reads an environment variable derived from the name
//     ("oauth/google" becomes SECRET_OAUTH_GOOGLE)
//   - [Static] serves a fixed map, for development and tests
//
// Use [New] to pick a backend from configuration:
//
//	store, err := secrets.New(secrets.Config{
//	    Backend: secrets.BackendAWS,
//	    AWS:     secrets.AWSConfig{Region: "eu-west-1", AccessKey: key, SecretKey: secret},
//	})
//	payload, err := store.SecretJSON(ctx, "oauth/google")
//
// Lookup failures map onto [ErrNotFound], [ErrAccessDenied], [ErrEmpty] and
// [ErrLookupFailed]; match them with errors.Is.
package secrets

// Package account persists local users and their linked provider identities.
//
// Two stores implement [Store]: [Postgres] for deployments and [Memory] for
// local development and tests. Both enforce one account per folded email
// and one owner per (provider type, provider user id).
package account

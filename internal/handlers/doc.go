// Package handlers exposes the login flow over HTTP.
//
// GET /auth/{provider} redirects the browser to the provider.
// GET /auth/{provider}/callback completes the flow and redirects to the
// success URL, or to the failure URL with error=auth_failed. Which step
// failed is never revealed to the browser.
package handlers

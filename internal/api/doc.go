// Package api contains the HTTP handlers for the Todo API and the mapping
// from internal errors to HTTP-shaped responses. Handlers assume the auth
// middleware has already attached the authenticated user to the request
// context; they validate input, enforce ownership, and delegate persistence
// to the store interfaces.
package api

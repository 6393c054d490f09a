// Package scopes implements string-based permission matching with wildcard
// support, used by the rbac package to evaluate role permissions.
//
// Scopes are flat strings optionally namespaced with dots ("vehicles.read").
// A trailing "*" grants everything under a namespace, and a bare "*" grants
// everything.
package scopes

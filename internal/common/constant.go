// Package common contains shared constants and sentinel errors used across
// the Family Account client and development backend.
package common

// TokenKey is the key under which the client persists its bearer token.
const TokenKey = "ACCESS_TOKEN"

// AuthorizationHeader carries the bearer credential on outbound requests.
const AuthorizationHeader = "Authorization"

// BearerPrefix precedes the token in the Authorization header value.
const BearerPrefix = "Bearer "

// MinPasswordLength is enforced both by client-side validation and by the
// backend when accounts are created or passwords are changed.
const MinPasswordLength = 8

// MaxPhotoSize caps profile photo uploads on both sides of the wire.
const MaxPhotoSize = 5 << 20

// MinSearchLength is the shortest query the collaborator search acts on.
const MinSearchLength = 3

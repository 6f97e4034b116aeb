// Package validation provides struct tag validation for remotekit
// configuration types, using the validator library. Component Config types
// declare constraints with `validate:"..."` tags and call Validate from
// their own Validate methods.
package validation

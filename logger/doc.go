// Package logger provides structured logging for remotekit on top of
// zerolog. Components obtain a tagged sub-logger via WithComponent and log
// with maps of fields; a package-level global serves code that is not handed
// a logger explicitly.
package logger

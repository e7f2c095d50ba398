// Package logger provides structured logging built on zerolog.
//
// It exposes a thin wrapper with component tagging, field helpers for the
// dictation domain (session, agent, chunk), and a global logger plus a
// named-logger registry so packages can obtain a tagged logger without
// threading one through every constructor.
package logger

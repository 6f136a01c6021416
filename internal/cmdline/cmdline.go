// Package cmdline holds the flag-level configuration shared between the
// CLI surface and the pipeline it drives.
package cmdline

import (
	"math/rand"
	"strings"
	"time"
)

// Config mirrors the `binding` subcommand's flags (spec §6).
type Config struct {
	BinaryDir    string
	InputHeader  string
	OutHeader    string
	OutSource    string
	IncludePaths []string
}

// SplitIncludePaths splits a ';'-separated --include-path value. Empty
// entries (common when the flag is built by joining an already-empty list
// upstream) are not filtered here — that is internal/frontend's job, so
// that any caller of the front end, not just this CLI, gets the same
// tolerance (spec §9, open question on duplicate/empty entries).
func SplitIncludePaths(raw string) []string {
	if raw == "" {
		return nil
	}
	return strings.Split(raw, ";")
}

const runIDAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
const runIDLength = 16

// NewRunID draws a 16-character identifier uniformly from ASCII letters,
// used to give each invocation's registrar symbols a unique suffix (spec
// §4.6, §8 property 6).
func NewRunID() string {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	b := make([]byte, runIDLength)
	for i := range b {
		b[i] = runIDAlphabet[rng.Intn(len(runIDAlphabet))]
	}
	return string(b)
}

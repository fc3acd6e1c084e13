// Package xtask contains the Burn specific parts of the build tooling: which crates are built
// for which environment, which backends are left out on CI and how the top-level commands map
// to their handlers.
package xtask

// Package setup checks that the host has the programs grub-mkrescue shells out to.
//
// Nothing here runs during a build: a missing tool surfaces there as a launch
// error. The checks back the `grubimage check` command, and like the rest of
// the CLI glue they log through the package logger set with SetLogger.
package setup

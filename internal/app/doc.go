// Package app wires the converter pipeline together: it owns the logger,
// reads the input file into lines, drives the tree builder, and writes the
// rendered MEF document to its destination.
package app

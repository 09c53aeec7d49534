// Package testutil holds signal generators and float assertions shared by
// the package tests. Generators are seeded so every run sees the same input.
package testutil

// Package storage defines the repository interfaces and wire serialization
// for beans and chatter snapshots. The badger sub-package provides the
// embedded BadgerDB implementation.
package storage

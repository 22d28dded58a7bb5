// Package ostore implements store.IStore, a reactive store owning a single nested record.
package ostore

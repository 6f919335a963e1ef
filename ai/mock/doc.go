// Package mock provides test doubles for the ai package interfaces.
// The mock embedder produces deterministic vectors so pipeline tests can
// assert idempotence without talking to an external model.
package mock

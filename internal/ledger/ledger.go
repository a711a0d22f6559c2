// Package ledger defines the token ledger collaborator of the burn engine.
//
// The burn engine never moves balances itself - it delegates the actual
// destruction of token units to an implementation of Ledger and treats a
// refusal as aborting the whole invocation. The in-memory implementation
// here backs the CLI and tests; a chain-backed implementation would
// satisfy the same interface.
package ledger

import (
	"context"
	"fmt"
	"sync"
)

// Ledger destroys token units on behalf of the burn engine.
//
// Destroy is synchronous and atomic: it either fully succeeds, permanently
// reducing total supply by amount, or it fails with no state change.
// A holder without sufficient balance is refused with
// *InsufficientBalanceError.
type Ledger interface {
	Destroy(ctx context.Context, amount uint64, from string) error
}

// InsufficientBalanceError is returned when a holder's balance cannot
// cover the requested destroy.
type InsufficientBalanceError struct {
	Account   string // The refused holder
	Balance   uint64 // Balance at refusal time
	Requested uint64 // Amount that was requested
}

// Error implements the error interface.
func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("account %s has insufficient balance: %d < %d requested",
		e.Account, e.Balance, e.Requested)
}

// InMemory is a token ledger held entirely in process memory.
//
// Balances are seeded at construction; total supply is their sum and only
// ever decreases (destroy-only - this ledger deliberately has no mint or
// transfer surface, matching the engine's scope).
//
// Thread-safety: InMemory is safe for concurrent use via internal mutex,
// although the engine serializes all calls anyway.
type InMemory struct {
	mu          sync.Mutex
	balances    map[string]uint64
	totalSupply uint64
}

// NewInMemory creates an in-memory ledger seeded with the given balances.
// The map is copied; the caller's map is never retained.
func NewInMemory(balances map[string]uint64) *InMemory {
	l := &InMemory{balances: make(map[string]uint64, len(balances))}
	for account, balance := range balances {
		l.balances[account] = balance
		l.totalSupply += balance
	}
	return l
}

// Destroy permanently removes amount from the holder's balance and from
// total supply. Fails with *InsufficientBalanceError if the balance
// cannot cover the amount; no state changes on failure.
func (l *InMemory) Destroy(ctx context.Context, amount uint64, from string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	balance := l.balances[from]
	if balance < amount {
		return &InsufficientBalanceError{
			Account:   from,
			Balance:   balance,
			Requested: amount,
		}
	}

	l.balances[from] = balance - amount
	l.totalSupply -= amount
	return nil
}

// BalanceOf returns the current balance of an account (zero for unknown
// accounts).
func (l *InMemory) BalanceOf(account string) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balances[account]
}

// TotalSupply returns the current total supply across all accounts.
func (l *InMemory) TotalSupply() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.totalSupply
}

package domain

import "errors"

var ErrRecordNotFound = errors.New("Record not found")

// ErrPersistenceInconsistency is returned when a keyed update for an account
// that was just loaded affects no row.
var ErrPersistenceInconsistency = errors.New("Transaction failed")

// ErrConcurrentUpdate is returned when the stored account no longer matches
// the snapshot a transaction was decided against.
var ErrConcurrentUpdate = errors.New("Account was modified concurrently")

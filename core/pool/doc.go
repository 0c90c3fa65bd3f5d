// Package pool hands out a fixed set of loader handles to concurrent requests.
//
// A Pool owns one slot per handle. Requests that find every slot busy wait in a
// FIFO queue; a released slot goes straight to the oldest waiter without passing
// through the free state, so a waiter is woken exactly once per release.
//
// Acquire is the callback form used by the asset pipeline. Get is the blocking
// form and honors context cancellation.
package pool

// Package types defines the booking field descriptors, the event types that
// carry them, the Store and Table interfaces of the event-type store, and the
// standard error values shared by the bookingfields packages.
package types

// Package bookingfields reconciles an event type's persisted booking fields
// with the catalog of system fields every booking form must carry.
//
// The persisted list is what the event type owner saved: their own questions
// plus any system fields they customized. Reconcile layers the catalog
// definition underneath each persisted system field (persisted attributes win,
// the catalog fills gaps), prepends the missing "before" fields (name, email,
// location) and appends the missing "after" fields (title, notes, guests,
// rescheduleReason). The result is checked before it is returned, so a
// CompleteFieldList always contains every system field.
//
// Everything in this package is pure and safe for concurrent use.
package bookingfields

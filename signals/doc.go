// Package signals holds the frame-indexed signal table of one recording and
// the declared names of the ego and object-list signals read from it.
//
// Every lookup is total: a signal that was never recorded, or that ends
// before the requested frame, reads as 0.
package signals

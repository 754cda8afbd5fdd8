// Package transform converts ego positions from the wrapping local encoding
// of the vehicle log into a continuous world frame, and from the world frame
// into a frame relative to a chosen origin pose.
package transform

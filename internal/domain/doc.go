// Package domain defines the machine settings of a pen plotter.
//
// MachineSettings holds the six values every collaborator (canvas, G-code
// emitter, settings dialog) reads: bed width and height, feed rate, and the
// three Z heights for pen down, pen up and safe travel.
//
// # Invariants
//
// Every MachineSettings obtained from this package satisfies:
//
//   - MinDimension <= bed_width, bed_height <= MaxDimension
//   - MinFeedRate <= feed_rate <= MaxFeedRate
//   - pen_down_position <= pen_up_position <= safe_z
//
// Values are immutable. Edits go through With or Set, which copy, edit and
// re-validate, so an instance that breaks an invariant is never observable.
//
// # Serialization
//
// ToMap and FromMap convert to and from a flat string-keyed mapping. FromMap
// separates malformed input (MissingFieldsError, TypeMismatchError) from
// well-formed but physically inconsistent input (ValidationError).
//
// # Presets and profiles
//
// Two built-in presets ship with the package: "standard" (the default, pen
// up at 1mm) and "clearance" (pen up at 5mm, safe Z at 10mm). Profile wraps
// settings stored under a user-chosen name.
package domain

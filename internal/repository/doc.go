// Package repository defines storage for named machine settings profiles.
//
// A profile is a complete MachineSettings saved under a user-chosen name,
// such as "a3-fineliner" or "a4-brush-pen", so an operator can switch
// between pens and media without editing numbers by hand. The settings file
// remains the single active configuration; profiles are copied into it.
//
// # SQLite Implementation
//
// The sqlite subpackage stores one row per profile with the six values in
// typed columns plus a fingerprint. Rows are re-validated when read, so a
// database edited by hand cannot produce settings that break the machine
// invariants.
//
// # Testing
//
// The sqlite repository is tested against in-memory databases.
package repository

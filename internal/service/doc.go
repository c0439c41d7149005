// Package service coordinates the settings file, named profiles and change
// notifications.
//
// SettingsService owns the current machine settings value. Every mutation
// goes through the domain constructors, so an invalid value is never held or
// written. Changes are persisted through a settings.Store and announced on an
// EventBus.
//
// # Events
//
// Subscribers receive settings_loaded, settings_saved, settings_reloaded and
// settings_rejected for the settings file, and profile_saved,
// profile_applied and profile_deleted for named profiles. Slow subscribers
// miss events rather than blocking the publisher.
package service

/*
Package types defines core data structures shared by the launcher services,
the backend wire protocol and the front ends.

# Overview

The types package provides shared type definitions for:
  - Instances and the options used to create, rename and re-icon them
  - Accounts (public summary and the stored record with tokens)
  - Launcher settings and their tabs
  - UI state persisted between runs
  - Stored notifications (activity entries)
  - Field-level validation errors

# Instance Types

Instance:
  - Identifier derived from the name at creation, stable across renames
  - Display name, mod loader, game version
  - Icon as a data:image/png;base64 URL, empty when unset

InstanceOptions:
  - Input of CreateInstance
  - Validated with go-playground/validator tags (loader, gameversion)

# Account Types

AccountSummary:
  - What front ends see: uuid, username, obtainedAt, isActive

AccountRecord:
  - What the backend stores; Tokens never leave it (json:"-")

# Settings

Settings:
  - One struct per tab: launcher, preferences, notifications, advanced
  - gameOptions holds the default version for new instances
  - Dimension accepts "auto" or a number and keeps invalid input for validation

# UI State

UIState:
  - Theme (light, dark, oled, system)
  - Sidebar, settings tab, game options tab
  - Selected and recently opened instances

# Errors

ValidationError:
  - A list of FieldError{Field, Message}
  - Field(name) returns the message for one input
  - Shown inline next to the field by the TUI

# Field Tags

All persisted types use JSON tags; types exported by the CLI carry YAML
tags too. The `omitempty` tag keeps optional fields out of documents.
*/
package types

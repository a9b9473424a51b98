// Package notifier exposes the notification service: addressing-mode
// resolution for sends, read-state queries, connection lifecycle, and
// connected-user statistics.
//
// Three addressing modes exist for a send, applied in precedence order:
// broadcast to the snapshot of currently connected users, an explicit set of
// user ids, or a single user. Multi-target sends account failures per target
// and report {successful, failed, total} counts instead of an all-or-nothing
// verdict.
//
// Every operation returns a structured result with a Success flag rather
// than a Go error. Collaborator failures are wrapped into the same shape, so
// upstream layers can serialize any outcome directly.
package notifier

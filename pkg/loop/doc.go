// Package loop implements a generic circular doubly-linked list whose
// nodes live in an id-indexed arena. Nodes are addressed by integer
// ids rather than pointers; ids are assigned monotonically and never
// reused, so a stale id can never silently alias a new node. The loop
// exclusively owns its nodes. All structural mutation goes through a
// Cursor.
package loop

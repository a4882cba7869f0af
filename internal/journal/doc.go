// Package journal records dataset mutations in a per-dataset SQLite
// database so batch operations can be audited after the fact.
//
// The journal is append-only bookkeeping, not a recovery mechanism: undo
// works off the in-memory history, and journal write failures never fail the
// mutation they describe. Schema changes bump the version in schema.sql;
// users delete the journal database to adopt the new schema.
package journal

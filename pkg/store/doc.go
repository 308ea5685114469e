/*
Package store persists trained generators in a SQL database.

Every model is saved as one row of the namegen_models table: a name, the
engine that produced it, and a MessagePack encoded snapshot. Saving under an
existing name replaces the previous model and assigns it a new UUID, so
callers can tell revisions apart.

The package only uses database/sql. The caller picks and registers the
driver; the queries are written for SQLite.

Models can also be moved between databases as indented JSON, with Export and
Import, or kept in standalone files with WriteFile and ReadFile.
*/
package store

// Package journal keeps a local history of import runs in SQLite.
//
// Each run stores its inputs, counters and every diagnostic the alignment
// engine raised, so an operator can revisit a past import with
// `subtransfer history show <run>`. The database carries a schema version;
// an incompatible file is rejected with ErrSchemaMismatch rather than
// migrated.
package journal

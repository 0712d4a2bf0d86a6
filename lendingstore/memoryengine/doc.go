// Package memoryengine keeps the lending store in process memory.
//
// It honors the same contract as the SQL engine: atomic commits, version-guarded updates and
// unique keys on book ISBN, member number, national ID and fine loan ID. It is meant for unit
// tests and the CLI's throwaway mode.
package memoryengine

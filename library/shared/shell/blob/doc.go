// Package blob stores exported reports.
//
// Store has two implementations: MemoryStore keeps objects in process memory for tests and
// the memory engine, S3Store writes to an AWS S3 or S3 compatible (MinIO) bucket.
package blob

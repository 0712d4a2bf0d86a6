// Package finesreport exports the outstanding fines as a JSON document to a blob store.
//
// One report is written per day under <prefix>outstanding-fines-YYYY-MM-DD.json. Exporting
// twice on the same day overwrites the earlier report.
package finesreport

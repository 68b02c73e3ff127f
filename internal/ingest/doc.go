// Package ingest decodes uploaded CSV and XLSX exports into the raw table
// structure consumed by the pipeline. It is responsible for encoding
// concerns (UTF-8 BOM, ragged rows, header whitespace) so the pipeline can
// assume a clean table.
package ingest

// Package exporter serializes pipeline results into downloadable artifacts.
// CSV output carries a UTF-8 BOM so Excel opens it correctly; XLSX output is
// produced with excelize for customers who want a workbook back.
package exporter

// Package workbook adapts an xlsx workbook sheet to the reconcile.Store
// interface using excelize.
//
// A workbook is loaded fully into memory. Sheet mutations (row removal,
// row append) only touch the in-memory copy; nothing reaches disk until
// Save, which writes to a temporary file beside the destination and renames
// it into place. A failed save leaves the destination untouched.
//
// # Usage
//
//	wb, err := workbook.Open("transport.xlsx")
//	sheet, err := wb.Sheet("charm")
//	summary, err := reconcile.Run(sheet, source, spec)
//	err = wb.Save("transport_updated.xlsx")
package workbook

// Package docx writes WordprocessingML (.docx) packages: a zip archive holding
// word/document.xml plus the content-type, relationship and property parts
// Word needs to open it.
//
// A Document is an in-memory session. Create one with New, add paragraphs and
// tables, serialize it with WriteTo and release it with Close; a closed
// Document rejects further use with ErrClosed.
//
// Extract reads a package back into plain paragraphs and table cells.
package docx

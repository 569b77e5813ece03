// Package export turns rendered documents into deliverable payloads. An
// Exporter is looked up by name from a Registry. The html exporter lays the
// sanitised body out in a printable page, text strips markup, markdown
// converts the body for plain-text tooling and json emits the document with
// its template metadata.
package export

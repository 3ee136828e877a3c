// Package connector provides object storage for uploaded media.
// Azure Blob Storage is used in deployed environments and a local
// directory store serves development and tests.
package connector

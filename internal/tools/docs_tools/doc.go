// Package docs_tools defines the Google Docs operations of the catalog.
package docs_tools

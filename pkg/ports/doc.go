/*
Package ports defines the driven ports (interfaces) of the typo3docs gateway.

These interfaces decouple the dispatch and fallback logic from concrete
implementations, so handlers can be exercised against fake remotes and
alternative content sources.

# Key Interfaces

  - Fetcher: Performs one outbound GET and returns the decoded JSON object.
  - Handler: Implements one operation and produces a domain.Document.
*/
package ports

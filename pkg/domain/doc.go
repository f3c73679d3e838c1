/*
Package domain contains the core types of the typo3docs gateway.

It defines what an operation looks like to a caller (its name and argument
schema), the structured document a handler produces, and the typed result the
dispatcher hands back. This package is kept pure and free of I/O, following
Hexagonal Architecture principles.

# Key Entities

  - Operation: A named query with a declared, ordered parameter schema.
  - Args: The argument map of a single invocation.
  - Document: Structured text (title, metadata, items, resources) before rendering.
  - Result: The typed outcome of an invocation. It is either a document or an error
    document, and always carries non-empty text.
  - CuratedEntry: Static, hand-maintained content used when no live data is available.
*/
package domain

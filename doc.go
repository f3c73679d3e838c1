/*
Package typo3docs is a lookup gateway for TYPO3 documentation and ecosystem metadata.

It exposes six named operations that answer questions about the TYPO3 CMS:
documentation search, Core changelogs, extension search and detail from the
TYPO3 Extension Repository (TER), Core API references and coding guidelines.
Every operation returns a markdown document.

# Concept

Operations follow one of two patterns:

  - Remote-first: one best-effort call to docs.typo3.org or the TER API. When the
    call fails, times out or returns nothing usable, the answer is built from
    curated content instead. The caller never sees the network failure.
  - Pure lookup: an exact-key lookup in curated content, with a guidance
    document for unknown keys.

The Gateway never returns an error from Invoke. Unknown operations, invalid
arguments and handler faults all come back as a Result of kind
domain.ResultError holding a single line of text.

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/aretw0/typo3docs"
	)

	func main() {
		gw, err := typo3docs.New()
		if err != nil {
			log.Fatal(err)
		}

		res := gw.Invoke(context.Background(), "get_typo3_changelog", map[string]any{
			"version": "12.4",
			"type":    "Breaking",
		})
		fmt.Println(res.Text)
	}

The same gateway backs the MCP server (pkg/adapters/mcp), the REST server
(pkg/adapters/http) and the typo3docs command.
*/
package typo3docs

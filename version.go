package typo3docs

import _ "embed"

// Version is the release version of the gateway.
//
//go:embed VERSION
var Version string

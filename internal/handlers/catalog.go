package handlers

import "github.com/aretw0/typo3docs/pkg/domain"

// Operation names, as advertised to callers.
const (
	OpSearchDocs       = "search_typo3_docs"
	OpChangelog        = "get_typo3_changelog"
	OpSearchExtensions = "search_typo3_extensions"
	OpExtensionDetail  = "get_extension_detail"
	OpAPIReference     = "get_typo3_api_reference"
	OpGuidelines       = "get_typo3_coding_guidelines"
)

// Result limits.
const (
	MaxDocResults        = 10
	DefaultExtensionHits = 10
	MaxExtensionHits     = 50
	MaxDescriptionChars  = 200
	MaxDetailChars       = 2000
)

// ChangeTypes are the accepted changelog type filters. All is not a curated group.
var ChangeTypes = []string{"Breaking", "Deprecation", "Feature", "Important", "All"}

// GuidelineTopics are the accepted guideline topics.
var GuidelineTopics = []string{"php", "javascript", "typescript", "fluid", "typoscript", "database", "security", "all"}

// Operations returns the static operation catalog in advertised order.
func Operations() []domain.Operation {
	return []domain.Operation{
		{
			Name:        OpSearchDocs,
			Remote:      true,
			Description: "Search TYPO3 official documentation at docs.typo3.org. Returns relevant documentation pages with excerpts. Use this when you need information about TYPO3 APIs, features, or configuration.",
			Params: []domain.Param{
				{Name: "query", Type: domain.ParamString, Required: true, Description: "Search query (e.g., 'QueryBuilder', 'Dependency Injection', 'Fluid ViewHelpers')"},
				{Name: "version", Type: domain.ParamString, Default: "main", Description: "TYPO3 version (e.g., '12.4', '11.5'). Defaults to main."},
			},
		},
		{
			Name:        OpChangelog,
			Description: "Fetch TYPO3 Core changelog entries for specific version or type. Returns breaking changes, deprecations, features, and important information for TYPO3 upgrades.",
			Params: []domain.Param{
				{Name: "version", Type: domain.ParamString, Required: true, Description: "TYPO3 version (e.g., '12.4', '11.5', '13.0')"},
				{Name: "type", Type: domain.ParamString, Default: "All", Enum: ChangeTypes, Description: "Changelog entry type"},
			},
		},
		{
			Name:        OpSearchExtensions,
			Remote:      true,
			Description: "Search TYPO3 Extension Repository (TER) for extensions. Returns extension information including ratings, downloads, compatibility, and descriptions.",
			Params: []domain.Param{
				{Name: "query", Type: domain.ParamString, Required: true, Description: "Search query (extension name, keyword, or functionality)"},
				{Name: "typo3_version", Type: domain.ParamString, Default: "12", Description: "Filter by TYPO3 compatibility version (e.g., '12.4')"},
				{Name: "limit", Type: domain.ParamInteger, Default: DefaultExtensionHits, Min: domain.IntPtr(1), Max: domain.IntPtr(MaxExtensionHits), Description: "Maximum number of results"},
			},
		},
		{
			Name:        OpExtensionDetail,
			Remote:      true,
			Description: "Get detailed information about a specific TYPO3 extension from TER.",
			Params: []domain.Param{
				{Name: "extension_key", Type: domain.ParamString, Required: true, Description: "The extension key (e.g., 'news', 'powermail', 'mask')"},
			},
		},
		{
			Name:        OpAPIReference,
			Description: "Get TYPO3 Core API reference for specific class or interface. Returns class documentation, methods, properties, and usage examples.",
			Params: []domain.Param{
				{Name: "class_name", Type: domain.ParamString, Required: true, Description: `Fully qualified class name (e.g., 'TYPO3\CMS\Core\Database\ConnectionPool')`},
				{Name: "method_name", Type: domain.ParamString, Description: "Specific method name to get detailed info (optional)"},
			},
		},
		{
			Name:        OpGuidelines,
			Description: "Retrieve TYPO3 Coding Guidelines (CGL) for specific topic. Returns official coding standards and best practices.",
			Params: []domain.Param{
				{Name: "topic", Type: domain.ParamString, Default: "php", Enum: GuidelineTopics, Description: "Guideline topic"},
			},
		},
	}
}

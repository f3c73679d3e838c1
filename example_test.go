package typo3docs_test

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/aretw0/typo3docs"
)

// ExampleGateway_Invoke shows a pure lookup, which never touches the network.
func ExampleGateway_Invoke() {
	gw, err := typo3docs.New()
	if err != nil {
		log.Fatal(err)
	}

	res := gw.Invoke(context.Background(), "get_typo3_changelog", map[string]any{
		"version": "12.4",
		"type":    "Breaking",
	})
	fmt.Println(strings.SplitN(res.Text, "\n", 2)[0])
	// Output: # TYPO3 12.4 Changelog
}

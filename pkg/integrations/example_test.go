package integrations_test

import (
	"fmt"

	"github.com/matzehuels/factoriogen/pkg/integrations"
)

func ExamplePathEscape() {
	// Mod names may contain spaces; they are escaped as a single path segment
	fmt.Println(integrations.PathEscape("flib"))
	fmt.Println(integrations.PathEscape("Squeak Through"))
	fmt.Println(integrations.PathEscape("a/b"))
	// Output:
	// flib
	// Squeak%20Through
	// a%2Fb
}

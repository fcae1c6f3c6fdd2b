package version_test

import (
	"fmt"

	"github.com/matzehuels/factoriogen/pkg/version"
)

func ExampleCompare() {
	fmt.Println(version.Compare("1.2.0", "1.2.0-rc1"))
	fmt.Println(version.Compare("1.2.0-alpha", "1.2.0-beta"))
	fmt.Println(version.Compare("1.2", "1.2.0+build.7"))
	// Output:
	// 1
	// -1
	// 0
}

func ExampleSortDesc() {
	fmt.Println(version.SortDesc([]string{"1.0.0", "2.0.0", "1.2.0"}))
	// Output:
	// [2.0.0 1.2.0 1.0.0]
}

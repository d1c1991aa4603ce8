package scrape_test

import (
	"fmt"
	"strings"

	"github.com/matzehuels/ghprofile/pkg/scrape"
)

func ExampleYearlyContributions() {
	page := `<div class="js-yearly-contributions">
	  <h2 class="f4 text-normal mb-2">1,234 contributions in the last year</h2>
	</div>`

	n, err := scrape.YearlyContributions(strings.NewReader(page))
	fmt.Println(n, err)
	// Output:
	// 1234 <nil>
}

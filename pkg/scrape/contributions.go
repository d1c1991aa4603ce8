// Package scrape extracts values from GitHub HTML pages that the REST API
// does not expose.
package scrape

import (
	"io"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/matzehuels/ghprofile/pkg/errors"
)

// YearlyContributionsSelector marks the contribution calendar on a profile page.
const YearlyContributionsSelector = "div.js-yearly-contributions"

// YearlyContributions returns the "N contributions in the last year" count
// from a profile page.
//
// The count is the first whitespace-separated token of the first h2 that
// follows the contribution calendar marker in document order, with thousands
// separators removed. Every failure carries the PARSE_ERROR code.
func YearlyContributions(r io.Reader) (int, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeParse, err, "read profile page")
	}

	marker := doc.Find(YearlyContributionsSelector).First()
	if marker.Length() == 0 {
		return 0, errors.New(errors.ErrCodeParse, "profile page has no %s element", YearlyContributionsSelector)
	}

	heading := nextHeading(marker)
	if heading == nil {
		return 0, errors.New(errors.ErrCodeParse, "no contributions heading after %s", YearlyContributionsSelector)
	}

	text := strings.TrimSpace(heading.Text())
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return 0, errors.New(errors.ErrCodeParse, "contributions heading is empty")
	}

	n, err := strconv.Atoi(strings.ReplaceAll(fields[0], ",", ""))
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeParse, err, "contributions heading %q is not numeric", text)
	}
	return n, nil
}

// nextHeading returns the first h2 after marker in document order: its own
// descendants first, then following siblings of marker and of each ancestor.
func nextHeading(marker *goquery.Selection) *goquery.Selection {
	if h := marker.Find("h2").First(); h.Length() > 0 {
		return h
	}
	for s := marker; s.Length() > 0; s = s.Parent() {
		for sib := s.Next(); sib.Length() > 0; sib = sib.Next() {
			if goquery.NodeName(sib) == "h2" {
				return sib
			}
			if h := sib.Find("h2").First(); h.Length() > 0 {
				return h
			}
		}
	}
	return nil
}

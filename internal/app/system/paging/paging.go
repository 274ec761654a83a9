// Package paging computes counter-anchored page windows for a member's
// message feed.
//
// The message ledger assigns every message a per-member sequence number
// (message_no) and keeps the member's counter one ahead of the highest
// assigned number. Pages are therefore pure arithmetic on the known total:
// page 1 is the newest `size` numbers, page 2 the next `size` older ones,
// and each page's window is anchored to an absolute message_no. A message
// appended after a page was computed changes the total for the *next*
// request but never shifts the content of a window already handed out.
package paging

import (
	"net/http"
	"strconv"

	"github.com/dalemusser/waffle/pantry/query"

	"github.com/dalemusser/askbox/internal/app/system/fault"
)

// DefaultPage is the page used when the request does not carry one.
const DefaultPage = 1

// DefaultSize is the page size used when the request does not carry one.
const DefaultSize = 10

// Window is the computed slice of the message_no sequence for one page.
type Window struct {
	TotalElements int64
	TotalPages    int64
	// StartAt is the highest message_no included in the page. Fetch up to
	// `size` messages with message_no <= StartAt, descending.
	StartAt int64
	// OutOfRange is set when the requested page lies beyond the end of the
	// feed. The page is then a valid empty result with TotalPages zeroed,
	// not an error.
	OutOfRange bool
}

// Compute translates (counter, page, size) into a page window.
//
// counter is the member's message_count, which runs one ahead of the
// highest assigned message_no: a counter of 0 (or absent) means no
// messages, otherwise counter-1 messages exist. That off-by-one is
// load-bearing and must not be normalized away here.
//
// page must be >= 1 and size >= 1; anything else is an input fault,
// never a divide-by-zero.
func Compute(counter, page, size int64) (Window, error) {
	if page < 1 {
		return Window{}, fault.Invalid("page must be >= 1")
	}
	if size < 1 {
		return Window{}, fault.Invalid("size must be >= 1")
	}

	var total int64
	if counter > 0 {
		total = counter - 1
	}

	remainder := total % size
	pages := (total - remainder) / size
	if remainder > 0 {
		pages++
	}

	startAt := total - (page-1)*size
	if startAt < 0 {
		return Window{TotalElements: total, OutOfRange: true}, nil
	}

	return Window{TotalElements: total, TotalPages: pages, StartAt: startAt}, nil
}

// ParsePage extracts the 1-based "page" query parameter.
// Returns DefaultPage if absent or invalid.
func ParsePage(r *http.Request) int64 {
	return parsePositive(r, "page", DefaultPage)
}

// ParseSize extracts the "size" query parameter, falling back to def
// (or DefaultSize when def <= 0) if absent or invalid.
func ParseSize(r *http.Request, def int64) int64 {
	if def <= 0 {
		def = DefaultSize
	}
	return parsePositive(r, "size", def)
}

// HasPageParams reports whether the request asks for the paged form of the
// feed at all.
func HasPageParams(r *http.Request) bool {
	return query.Get(r, "page") != "" || query.Get(r, "size") != ""
}

func parsePositive(r *http.Request, key string, def int64) int64 {
	s := query.Get(r, key)
	if s == "" {
		return def
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 1 {
		return def
	}
	return n
}

package repository

import (
	"fmt"
	"strconv"
	"strings"
)

// NextID derives the next identifier for a fixed alphabetic prefix by
// scanning existing ids for the highest numeric suffix. Ids that do not carry
// the prefix or whose suffix is not numeric are ignored. The result is the
// prefix plus the zero-padded successor, e.g. NextID("CL", ["CL007","CL015"])
// == "CL016". Calling it twice without an intervening append returns the same
// value; callers that persist the id must do so under the owning file's lock.
func NextID(prefix string, ids []string) string {
	max := 0
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if len(id) <= len(prefix) || !strings.EqualFold(id[:len(prefix)], prefix) {
			continue
		}
		n, err := strconv.Atoi(id[len(prefix):])
		if err != nil || n < 0 {
			continue
		}
		if n > max {
			max = n
		}
	}
	return fmt.Sprintf("%s%03d", prefix, max+1)
}

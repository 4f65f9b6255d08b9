package platform

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jsamuelsen11/guise/internal/domain"
)

const depictIDPrefix = "id"

// FormatDepictID renders a component ID as used in markup and messages.
func FormatDepictID(id int64) string {
	return depictIDPrefix + strconv.FormatInt(id, 16)
}

// ParseDepictID reverses FormatDepictID. Only the prefix followed by
// lowercase hex digits is accepted.
func ParseDepictID(s string) (int64, error) {
	hex, ok := strings.CutPrefix(s, depictIDPrefix)
	if !ok || hex == "" || strings.ContainsFunc(hex, notLowerHex) {
		return 0, fmt.Errorf("depict ID %q: %w", s, domain.ErrInvalidArgument)
	}
	id, err := strconv.ParseInt(hex, 16, 64)
	if err != nil {
		return 0, fmt.Errorf("depict ID %q: %w", s, domain.ErrInvalidArgument)
	}
	return id, nil
}

func notLowerHex(r rune) bool {
	return (r < '0' || r > '9') && (r < 'a' || r > 'f')
}

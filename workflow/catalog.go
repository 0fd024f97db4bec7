package workflow

import (
	"fmt"
	"strconv"
	"strings"
)

// Fixed top-up catalog. Game ids are assigned at seed time and referenced by
// transactions without a foreign-key guard.
var gameCatalog = map[string]uint{
	"freefire":      1,
	"mobilelegends": 2,
	"pubgmobile":    3,
}

// GameID maps a catalog game name to its id.
func GameID(name string) (uint, bool) {
	id, ok := gameCatalog[name]
	return id, ok
}

// CatalogNames returns the catalog game names in no particular order.
func CatalogNames() []string {
	names := make([]string, 0, len(gameCatalog))
	for name := range gameCatalog {
		names = append(names, name)
	}
	return names
}

// ParseNominal splits a submitted nominal pair "label|price" into the item
// label and its integer price.
func ParseNominal(raw string) (string, int, error) {
	parts := strings.SplitN(raw, "|", 2)
	if len(parts) != 2 {
		return "", 0, fmt.Errorf("format nominal tidak valid: %q", raw)
	}
	label := strings.TrimSpace(parts[0])
	price, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return "", 0, fmt.Errorf("harga nominal tidak valid: %q", raw)
	}
	return label, price, nil
}

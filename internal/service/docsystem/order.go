package docsystem

import (
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	models "kbportal/internal/domain/models/docsystem"
)

// sortForDisplay orders nodes folders first, then by locale-aware name, then
// by id so equal names stay stable. A collator is not safe for concurrent
// use, so each call builds its own.
func sortForDisplay(nodes []*models.Node) {
	col := collate.New(language.English, collate.IgnoreCase)
	slices.SortStableFunc(nodes, func(a, b *models.Node) int {
		if a.IsFolder() != b.IsFolder() {
			if a.IsFolder() {
				return -1
			}
			return 1
		}
		if c := col.CompareString(a.Name, b.Name); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
}

package domain

import "sort"

// DuplicatedIDs devuelve los ids que aparecen más de una vez, ordenados.
func DuplicatedIDs(ids []string) []string {
	seen := make(map[string]int, len(ids))
	for _, id := range ids {
		seen[id]++
	}
	var dups []string
	for id, n := range seen {
		if n > 1 {
			dups = append(dups, id)
		}
	}
	sort.Strings(dups)
	return dups
}

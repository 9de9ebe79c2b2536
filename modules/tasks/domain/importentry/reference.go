package importentry

import (
	"cmp"
	"slices"
	"strconv"
	"strings"
)

type ListRef struct {
	Name      string
	ProjectID int
}

// ReferenceSet is the immutable lookup snapshot one import invocation
// resolves rows against. It is loaded once before parsing begins and
// never written to.
type ReferenceSet struct {
	Lists    map[int]ListRef
	Projects map[int]string
	Users    map[string]string
	// Membership maps a list id to the set of user ids allowed on it.
	// A list without an entry has an empty membership.
	Membership map[int]map[string]struct{}
}

// resolveByName scans entries in sorted-key order for a case-insensitive
// name match. Sorted order keeps "first match wins" deterministic, which
// Go map iteration would not.
func resolveByName[K cmp.Ordered](raw string, names map[K]string) (K, bool) {
	keys := make([]K, 0, len(names))
	for key := range names {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	for _, key := range keys {
		if strings.EqualFold(names[key], raw) {
			return key, true
		}
	}
	var zero K
	return zero, false
}

// ResolveList resolves a raw cell value to a list id. An id key match
// wins before any name scan: a value "5" resolves to list 5 directly
// even when some list is named "5".
func (r *ReferenceSet) ResolveList(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if id, err := strconv.Atoi(raw); err == nil {
		if _, ok := r.Lists[id]; ok {
			return id, true
		}
	}
	names := make(map[int]string, len(r.Lists))
	for id, list := range r.Lists {
		names[id] = list.Name
	}
	return resolveByName(raw, names)
}

// ResolveUser resolves a raw cell value to a user id, id key first, then
// case-insensitive name.
func (r *ReferenceSet) ResolveUser(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if _, ok := r.Users[raw]; ok {
		return raw, true
	}
	return resolveByName(raw, r.Users)
}

// HasAccess reports whether the user belongs to the list's membership.
func (r *ReferenceSet) HasAccess(listID int, userID string) bool {
	_, ok := r.Membership[listID][userID]
	return ok
}

func (r *ReferenceSet) ProjectName(id int) string {
	return r.Projects[id]
}

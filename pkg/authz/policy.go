package authz

import (
	"sort"
	"strings"

	"rbac-chatbot-be/internal/entity"
)

// Policy maps a role to the set of knowledge partitions it may query.
// It is built once from static configuration and never mutated afterwards,
// so concurrent reads need no locking. IsAuthorized is called on every
// request; nothing here is cached per session.
type Policy struct {
	grants map[entity.Role]map[string]struct{}
}

// NewPolicy builds a policy from role -> partition list grants. Partition
// names are normalized at construction so lookups and ingestion agree on
// canonical names. An empty partition list is a valid grant (the role may
// query nothing).
func NewPolicy(grants map[entity.Role][]string) *Policy {
	p := &Policy{grants: make(map[entity.Role]map[string]struct{}, len(grants))}
	for role, partitions := range grants {
		set := make(map[string]struct{}, len(partitions))
		for _, partition := range partitions {
			set[NormalizePartition(partition)] = struct{}{}
		}
		p.grants[role] = set
	}
	return p
}

// IsAuthorized reports whether role may query partition. Unknown roles have
// the empty access set: they are authorized for nothing, never implicitly
// allowed.
func (p *Policy) IsAuthorized(role entity.Role, partition string) bool {
	set, ok := p.grants[role]
	if !ok {
		return false
	}
	_, ok = set[NormalizePartition(partition)]
	return ok
}

// AccessibleSet returns the partitions role may query, sorted. The caller may
// show a requester their own set; it must never be used to describe another
// role's access.
func (p *Policy) AccessibleSet(role entity.Role) []string {
	set, ok := p.grants[role]
	if !ok {
		return []string{}
	}
	partitions := make([]string, 0, len(set))
	for partition := range set {
		partitions = append(partitions, partition)
	}
	sort.Strings(partitions)
	return partitions
}

// Roles returns the declared role enumeration, sorted.
func (p *Policy) Roles() []entity.Role {
	roles := make([]entity.Role, 0, len(p.grants))
	for role := range p.grants {
		roles = append(roles, role)
	}
	sort.Slice(roles, func(i, j int) bool { return roles[i] < roles[j] })
	return roles
}

// Partitions returns the union of all granted partitions, sorted. Ingestion
// uses it as the set of partitions worth indexing.
func (p *Policy) Partitions() []string {
	seen := make(map[string]struct{})
	for _, set := range p.grants {
		for partition := range set {
			seen[partition] = struct{}{}
		}
	}
	partitions := make([]string, 0, len(seen))
	for partition := range seen {
		partitions = append(partitions, partition)
	}
	sort.Strings(partitions)
	return partitions
}

// NormalizePartition is the single canonicalization used by both the policy
// check and partition index resolution. Authorization must never be
// bypassable by a case-varied or padded partition name.
func NormalizePartition(partition string) string {
	return strings.ToLower(strings.TrimSpace(partition))
}

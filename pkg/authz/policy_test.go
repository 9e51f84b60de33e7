package authz

import (
	"testing"

	"rbac-chatbot-be/internal/entity"
)

func testPolicy() *Policy {
	return NewPolicy(map[entity.Role][]string{
		entity.RoleFinance:     {"finance"},
		entity.RoleMarketing:   {"marketing"},
		entity.RoleHR:          {"hr"},
		entity.RoleEngineering: {"engineering"},
		entity.RoleEmployee:    {"general"},
	})
}

func TestIsAuthorized(t *testing.T) {
	policy := testPolicy()

	tests := []struct {
		name      string
		role      entity.Role
		partition string
		want      bool
	}{
		{"own partition", entity.RoleFinance, "finance", true},
		{"other partition", entity.RoleFinance, "marketing", false},
		{"hr cannot read engineering", entity.RoleHR, "engineering", false},
		{"employee general only", entity.RoleEmployee, "general", true},
		{"employee denied finance", entity.RoleEmployee, "finance", false},
		{"unknown role", entity.Role("intern"), "general", false},
		{"unknown partition", entity.RoleEngineering, "legal", false},
		{"case varied partition", entity.RoleMarketing, "Marketing", true},
		{"padded partition", entity.RoleHR, "  hr  ", true},
		{"case and padding cannot widen access", entity.RoleFinance, " Marketing ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := policy.IsAuthorized(tt.role, tt.partition); got != tt.want {
				t.Errorf("IsAuthorized(%q, %q) = %v, want %v", tt.role, tt.partition, got, tt.want)
			}
		})
	}
}

func TestIsAuthorizedMatchesAccessibleSet(t *testing.T) {
	// Membership in AccessibleSet and IsAuthorized must agree for every
	// declared role and every known partition.
	policy := testPolicy()

	for _, role := range policy.Roles() {
		allowed := make(map[string]bool)
		for _, partition := range policy.AccessibleSet(role) {
			allowed[partition] = true
		}
		for _, partition := range policy.Partitions() {
			if policy.IsAuthorized(role, partition) != allowed[partition] {
				t.Errorf("role %q: IsAuthorized and AccessibleSet disagree on %q", role, partition)
			}
		}
	}
}

func TestAccessibleSetUnknownRole(t *testing.T) {
	policy := testPolicy()

	set := policy.AccessibleSet(entity.Role("contractor"))
	if len(set) != 0 {
		t.Errorf("unknown role got access set %v, want empty", set)
	}
}

func TestEmptyGrantIsValid(t *testing.T) {
	policy := NewPolicy(map[entity.Role][]string{
		entity.Role("auditor"): {},
	})

	if policy.IsAuthorized(entity.Role("auditor"), "finance") {
		t.Error("role with empty grant was authorized")
	}
	if got := policy.AccessibleSet(entity.Role("auditor")); len(got) != 0 {
		t.Errorf("empty grant returned partitions %v", got)
	}
}

func TestPartitionsUnion(t *testing.T) {
	policy := NewPolicy(map[entity.Role][]string{
		entity.Role("a"): {"shared", "alpha"},
		entity.Role("b"): {"shared", "beta"},
	})

	got := policy.Partitions()
	want := []string{"alpha", "beta", "shared"}
	if len(got) != len(want) {
		t.Fatalf("Partitions() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Partitions() = %v, want %v", got, want)
		}
	}
}

func TestNormalizePartition(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Finance", "finance"},
		{"  hr\t", "hr"},
		{"ENGINEERING", "engineering"},
		{"general", "general"},
	}
	for _, tt := range tests {
		if got := NormalizePartition(tt.in); got != tt.want {
			t.Errorf("NormalizePartition(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

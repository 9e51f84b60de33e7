package config

import (
	"fmt"
	"os"

	"rbac-chatbot-be/internal/entity"
	"rbac-chatbot-be/pkg/authz"
	"rbac-chatbot-be/pkg/credentials"

	"github.com/pelletier/go-toml/v2"
)

// AccessConfig is the static access-control file: the credential table, the
// role -> partition grants, and the usernames allowed to trigger ingestion.
// Loaded once at process start and validated for totality before anything
// serves traffic.
type AccessConfig struct {
	Users []AccessUser        `toml:"users"`
	Roles map[string][]string `toml:"roles"`
	Admin AccessAdmin         `toml:"admin"`
}

type AccessUser struct {
	Username string `toml:"username"`
	Secret   string `toml:"secret"`
	Role     string `toml:"role"`
}

type AccessAdmin struct {
	Usernames []string `toml:"usernames"`
}

func LoadAccessConfig(path string) (*AccessConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read access config: %w", err)
	}

	var cfg AccessConfig
	if err := toml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parse access config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate fails fast on configuration the policy cannot be total over:
// users without a username or secret, users whose role is not declared in the
// grants table, and admin usernames that do not exist.
func (c *AccessConfig) Validate() error {
	if len(c.Roles) == 0 {
		return fmt.Errorf("access config: no roles declared")
	}

	seen := make(map[string]bool, len(c.Users))
	for i, u := range c.Users {
		if u.Username == "" {
			return fmt.Errorf("access config: user %d has no username", i)
		}
		if u.Secret == "" {
			return fmt.Errorf("access config: user %q has no secret", u.Username)
		}
		if seen[u.Username] {
			return fmt.Errorf("access config: duplicate username %q", u.Username)
		}
		seen[u.Username] = true

		if _, ok := c.Roles[u.Role]; !ok {
			return fmt.Errorf("access config: user %q has undeclared role %q", u.Username, u.Role)
		}
	}

	for _, name := range c.Admin.Usernames {
		if !seen[name] {
			return fmt.Errorf("access config: admin username %q is not a declared user", name)
		}
	}
	return nil
}

// Policy builds the immutable authorization policy from the grants table.
func (c *AccessConfig) Policy() *authz.Policy {
	grants := make(map[entity.Role][]string, len(c.Roles))
	for role, partitions := range c.Roles {
		grants[entity.Role(role)] = partitions
	}
	return authz.NewPolicy(grants)
}

// CredentialStore builds the static credential table.
func (c *AccessConfig) CredentialStore() *credentials.StaticStore {
	users := make([]credentials.User, 0, len(c.Users))
	for _, u := range c.Users {
		users = append(users, credentials.User{
			Username: u.Username,
			Secret:   u.Secret,
			Role:     entity.Role(u.Role),
		})
	}
	return credentials.NewStaticStore(users)
}

// IsAdmin reports whether username may trigger ingestion.
func (c *AccessConfig) IsAdmin(username string) bool {
	for _, name := range c.Admin.Usernames {
		if name == username {
			return true
		}
	}
	return false
}

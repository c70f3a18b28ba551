package permission

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/claimdesk/claimdesk/internal/domain/permission"
	vo "github.com/claimdesk/claimdesk/internal/domain/permission/valueobjects"
)

// tableFile is the YAML layout of a role table:
//
//	roles:
//	  admin: [canViewClaims, canApproveClaim]
//	overrides:
//	  ops@example.com: {canExecutePayment: true}
type tableFile struct {
	Roles     map[string][]string        `yaml:"roles"`
	Overrides map[string]map[string]bool `yaml:"overrides"`
}

// ParseTable decodes a YAML role table.
func ParseTable(data []byte) (*permission.Table, error) {
	var f tableFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse permission table: %w", err)
	}

	roles := make(map[permission.RoleKey][]vo.Capability, len(f.Roles))
	for name, caps := range f.Roles {
		role := permission.NewRoleKey(name)
		for _, s := range caps {
			c, err := vo.NewCapability(s)
			if err != nil {
				return nil, fmt.Errorf("role %s: %w", role, err)
			}
			roles[role] = append(roles[role], c)
		}
		if _, ok := roles[role]; !ok {
			roles[role] = []vo.Capability{}
		}
	}

	overrides := make(map[permission.UserKey]permission.Override, len(f.Overrides))
	for email, entries := range f.Overrides {
		o, err := permission.ParseOverride(entries)
		if err != nil {
			return nil, fmt.Errorf("override %s: %w", email, err)
		}
		overrides[permission.NewUserKey(email)] = o
	}

	return permission.NewTable(roles, overrides)
}

// LoadTableFile reads a YAML role table. An empty path yields the built-in
// default table.
func LoadTableFile(path string) (*permission.Table, error) {
	if path == "" {
		return permission.DefaultTable(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read permission table %s: %w", path, err)
	}
	return ParseTable(data)
}

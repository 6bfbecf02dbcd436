package config

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Admin is one entry of the fixed administrator table.
type Admin struct {
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
}

type adminsFile struct {
	Admins []Admin `yaml:"admins"`
}

// DefaultAdmins is used when no admins file is configured.
func DefaultAdmins() []Admin {
	return []Admin{
		{Email: "admin1@sydney.gov.au", Password: "admin1pass", Name: "Admin One"},
		{Email: "admin2@sydney.gov.au", Password: "admin2pass", Name: "Admin Two"},
		{Email: "admin3@sydney.gov.au", Password: "admin3pass", Name: "Admin Three"},
		{Email: "admin4@sydney.gov.au", Password: "admin4pass", Name: "Admin Four"},
	}
}

// LoadAdmins reads the administrator table from a YAML file. An empty path yields DefaultAdmins.
func LoadAdmins(path string) ([]Admin, error) {
	if path == "" {
		return normalizeAdmins(DefaultAdmins()), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read admins file %s", path)
	}

	var f adminsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrapf(err, "parse admins file %s", path)
	}
	if len(f.Admins) == 0 {
		return nil, errors.Errorf("admins file %s lists no administrators", path)
	}
	return normalizeAdmins(f.Admins), nil
}

func normalizeAdmins(admins []Admin) []Admin {
	out := make([]Admin, 0, len(admins))
	for _, a := range admins {
		a.Email = strings.ToLower(strings.TrimSpace(a.Email))
		a.Name = strings.TrimSpace(a.Name)
		out = append(out, a)
	}
	return out
}

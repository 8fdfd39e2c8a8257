package descriptor

import "strings"

// Descriptor describes one application to be hosted on the server.
type Descriptor struct {
	Name       string            `yaml:"name"`
	Domain     string            `yaml:"domain"`
	PathPrefix string            `yaml:"path,omitempty"`
	Kind       string            `yaml:"kind"` // static, proxy
	Root       string            `yaml:"root,omitempty"`
	Port       int               `yaml:"port,omitempty"`
	Cache      map[string]string `yaml:"cache,omitempty"`
	Command    string            `yaml:"command,omitempty"`
	WorkingDir string            `yaml:"working_dir,omitempty"`
	Restart    string            `yaml:"restart,omitempty"`
}

// Backend kind constants
const (
	KindStatic = "static"
	KindProxy  = "proxy"
)

// ValidKinds returns all valid backend kinds
func ValidKinds() []string {
	return []string{KindStatic, KindProxy}
}

// IsValidKind checks if the given kind is valid
func IsValidKind(k string) bool {
	for _, valid := range ValidKinds() {
		if k == valid {
			return true
		}
	}
	return false
}

// NormalizePath returns the canonical form of a path prefix: an empty
// prefix becomes "/", and trailing slashes are stripped except on the
// root path itself.
func NormalizePath(path string) string {
	if path == "" {
		return "/"
	}
	for len(path) > 1 && strings.HasSuffix(path, "/") {
		path = strings.TrimSuffix(path, "/")
	}
	return path
}

// NormalizedPath returns the descriptor's path prefix in canonical form.
func (d *Descriptor) NormalizedPath() string {
	return NormalizePath(d.PathPrefix)
}

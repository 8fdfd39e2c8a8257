package plan

import (
	"fmt"
	"strings"

	"github.com/deploygen/deploygen/internal/descriptor"
	"github.com/deploygen/deploygen/internal/errors"
)

// Validate checks a single descriptor for internal well-formedness. It is
// a pure function: no I/O, deterministic for identical input. Returned
// errors are *errors.PlanError values with one of the validation codes.
func Validate(d *descriptor.Descriptor) error {
	if err := validateDomain(d); err != nil {
		return err
	}
	if err := validatePath(d); err != nil {
		return err
	}
	switch d.Kind {
	case descriptor.KindStatic:
		if strings.TrimSpace(d.Root) == "" {
			return errors.ValidationApp(errors.ErrCodeInvalidStaticRoot, d.Name,
				"static backend requires a root directory")
		}
	case descriptor.KindProxy:
		if d.Port < 1 || d.Port > 65535 {
			return errors.ValidationApp(errors.ErrCodeInvalidPort, d.Name,
				fmt.Sprintf("port %d outside range 1-65535", d.Port))
		}
	default:
		return errors.ValidationApp(errors.ErrCodeInvalidKind, d.Name,
			fmt.Sprintf("unknown backend kind %q (valid: %s)", d.Kind,
				strings.Join(descriptor.ValidKinds(), ", ")))
	}
	return nil
}

// ValidateAll validates every descriptor in the set and returns the first
// failure per descriptor, keyed by input index. An empty map means the
// whole set is well-formed.
func ValidateAll(ds []descriptor.Descriptor) map[int]error {
	failures := make(map[int]error)
	for i := range ds {
		if err := Validate(&ds[i]); err != nil {
			failures[i] = err
		}
	}
	return failures
}

func validateDomain(d *descriptor.Descriptor) error {
	domain := d.Domain
	if domain == "" {
		return errors.ValidationApp(errors.ErrCodeInvalidDomain, d.Name, "domain cannot be empty")
	}
	if strings.ContainsAny(domain, " \t") {
		return errors.ValidationApp(errors.ErrCodeInvalidDomain, d.Name, "domain cannot contain whitespace")
	}
	if strings.Contains(domain, "://") {
		return errors.ValidationApp(errors.ErrCodeInvalidDomain, d.Name, "domain must not include a scheme")
	}
	if strings.Contains(domain, ":") {
		return errors.ValidationApp(errors.ErrCodeInvalidDomain, d.Name, "domain must not include a port")
	}
	if strings.Contains(domain, "/") {
		return errors.ValidationApp(errors.ErrCodeInvalidDomain, d.Name, "domain must not contain slashes")
	}
	if domain != strings.ToLower(domain) {
		return errors.ValidationApp(errors.ErrCodeInvalidDomain, d.Name, "domain must be lowercase")
	}
	return nil
}

func validatePath(d *descriptor.Descriptor) error {
	// Empty defaults to "/" during normalization.
	if d.PathPrefix == "" {
		return nil
	}
	if !strings.HasPrefix(d.PathPrefix, "/") {
		return errors.ValidationApp(errors.ErrCodeInvalidPath, d.Name,
			fmt.Sprintf("path prefix %q must start with /", d.PathPrefix))
	}
	if strings.ContainsAny(d.PathPrefix, " \t") {
		return errors.ValidationApp(errors.ErrCodeInvalidPath, d.Name, "path prefix cannot contain whitespace")
	}
	return nil
}

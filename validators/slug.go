package validators

import "errors"

var (
	ErrSlugEmpty   = errors.New("no slug provided")
	ErrSlugTooLong = errors.New("slug can't be longer than 64 characters")
	ErrSlugInvalid = errors.New("slug may only contain letters, digits, dashes and underscores")
)

// SlugValidator checks custom share slugs. The slug is only ever compared
// for equality, but keeping it path-safe avoids routing surprises
func SlugValidator(s string) error {
	if s == "" {
		return ErrSlugEmpty
	}

	if len(s) > 64 {
		return ErrSlugTooLong
	}

	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '-' || r == '_':
		default:
			return ErrSlugInvalid
		}
	}

	return nil
}

package config

import (
	"os"
	"strings"
)

// EditorEmails returns the configured editor allow-list. Entries are matched
// against a verified identity email by equality or substring (so a bare
// domain like "@journal.org" admits the whole masthead). An empty list
// admits nobody.
func EditorEmails() []string {
	raw := os.Getenv("EDITOR_EMAILS")
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	editors := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			editors = append(editors, trimmed)
		}
	}
	return editors
}

// ReviewAdminKey returns the pre-shared secret that authorizes review token
// issuance. This is deliberately separate from editor session identity: the
// issuing call carries the key out-of-band so it never depends on the JWT
// plane.
func ReviewAdminKey() string {
	return os.Getenv("REVIEW_ADMIN_KEY")
}

// ReviewAdminKeyHash returns the bcrypt hash of the admin key, if the
// deployment stores the key hashed instead of plain.
func ReviewAdminKeyHash() string {
	return os.Getenv("REVIEW_ADMIN_KEY_HASH")
}

// BaseURL returns the public origin used to build magic links when the
// request carries no Origin header.
func BaseURL() string {
	if base := os.Getenv("APP_BASE_URL"); base != "" {
		return strings.TrimRight(base, "/")
	}
	return "http://localhost:8080"
}

// UploadPath returns the directory where submitted manuscript files are
// stored.
func UploadPath() string {
	if path := os.Getenv("UPLOAD_PATH"); path != "" {
		return path
	}
	return "./uploads"
}

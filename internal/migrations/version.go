package migrations

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/wsdmailer/wsdmailer/config"
)

// ErrDatabaseAhead is returned when the stored schema version is newer than
// this binary. Running an older build against it could write rows the schema
// no longer accepts.
var ErrDatabaseAhead = errors.New("database schema is newer than this build")

// ParseMajorVersion extracts the schema version from a release string such as
// "v3.2" or "3". Only the major component drives migrations.
func ParseMajorVersion(release string) (float64, error) {
	clean := strings.TrimPrefix(strings.TrimSpace(release), "v")
	major, _, _ := strings.Cut(clean, ".")
	if major == "" {
		return 0, fmt.Errorf("invalid version format: %q", release)
	}

	version, err := strconv.ParseUint(major, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid major version %q: %w", major, err)
	}
	return float64(version), nil
}

// CurrentCodeVersion is the schema version this build expects
func CurrentCodeVersion() (float64, error) {
	return ParseMajorVersion(config.VERSION)
}

// checkSchemaCompatible fails when the database was migrated by a newer build
func checkSchemaCompatible(dbVersion, codeVersion float64) error {
	if dbVersion > codeVersion {
		return fmt.Errorf("%w: database at v%.0f, build expects v%.0f", ErrDatabaseAhead, dbVersion, codeVersion)
	}
	return nil
}

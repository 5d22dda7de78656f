package types

import (
	"fmt"
	"strings"
	"sync"

	"github.com/oklog/ulid/v2"
	"github.com/teris-io/shortid"
)

// GenerateUUID returns a k-sortable unique identifier
func GenerateUUID() string {
	return ulid.Make().String()
}

// GenerateUUIDWithPrefix returns a k-sortable unique identifier
// with a prefix ex cand_0ujsswThIGTUYm2K8FjOOfXtY1K
func GenerateUUIDWithPrefix(prefix string) string {
	if prefix == "" {
		return GenerateUUID()
	}
	return fmt.Sprintf("%s_%s", prefix, GenerateUUID())
}

var (
	sidGenerator *shortid.Shortid
	once         sync.Once
)

func initializeSID() {
	var err error
	sidGenerator, err = shortid.New(1, shortid.DefaultABC, 2342)
	if err != nil {
		panic("failed to initialize shortid generator: " + err.Error())
	}
}

// GenerateShortIDWithPrefix returns a short ID with a prefix.
// Total length is capped at 12 characters, e.g., `CMP-XYZ12A8Q`.
func GenerateShortIDWithPrefix(prefix string) string {
	once.Do(initializeSID)

	id, err := sidGenerator.Generate()
	if err != nil {
		return ""
	}
	id = strings.ReplaceAll(id, "-", "")

	availableLen := 12 - len(prefix)
	if availableLen <= 0 {
		return ""
	}

	if len(id) > availableLen {
		id = id[:availableLen]
	}

	return strings.ToUpper(fmt.Sprintf("%s%s", prefix, id))
}

const (
	// Prefixes for all domains and entities

	UUID_PREFIX_CANDIDATE        = "cand"
	UUID_PREFIX_DEPARTURE        = "dep"
	UUID_PREFIX_COMPLAINT        = "cmp"
	UUID_PREFIX_REMITTANCE       = "rem"
	UUID_PREFIX_REMITTANCE_ALERT = "ralert"
	UUID_PREFIX_DOCUMENT         = "doc"
	UUID_PREFIX_CAMPUS           = "campus"
	UUID_PREFIX_TRADE            = "trade"
	UUID_PREFIX_BATCH            = "batch"
	UUID_PREFIX_OEP              = "oep"
	UUID_PREFIX_INSTRUCTOR       = "inst"
	UUID_PREFIX_EMPLOYER         = "emp"
	UUID_PREFIX_USER             = "user"
	UUID_PREFIX_ACTIVITY         = "act"
	UUID_PREFIX_EXPORT           = "export"
)

const (
	SHORT_ID_PREFIX_COMPLAINT = "CMP-"
)

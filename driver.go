package parselect

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/rektorphi/parselect/util"
)

var (
	// ErrMissingLength is returned when a driver is started without its length argument.
	ErrMissingLength = errors.New("missing length argument")
	// ErrVerification is returned when a kernel produced a wrong result.
	ErrVerification = errors.New("verification failed")
)

// ParseLength parses the single non-negative length argument of a driver.
func ParseLength(args []string) (int, error) {
	if len(args) != 1 {
		return 0, ErrMissingLength
	}
	n, err := strconv.ParseInt(args[0], 10, 0)
	if err != nil {
		return 0, fmt.Errorf("invalid length argument %q: %w", args[0], err)
	}
	if n < 0 {
		return 0, fmt.Errorf("invalid length argument %q: must not be negative", args[0])
	}
	return int(n), nil
}

// LoadConfigOrDefault loads the config file name, or returns DefaultConfig if name is empty.
func LoadConfigOrDefault(name string, log util.Logger) (*Config, error) {
	if len(name) == 0 {
		return DefaultConfig(), nil
	}
	log.Printf("Loading config from %s", name)
	return LoadConfigFromFile(name)
}

package backend

import (
	"fmt"
	"os"

	"github.com/FiQCI/qflip/internal/circuit"
	"github.com/FiQCI/qflip/internal/device"
)

// Config selects and parameterizes an execution target.
type Config struct {
	Target string         // "remote" or "simulator"
	Device *device.Device // required

	// Endpoint overrides the device's endpoint environment variable for
	// the remote target.
	Endpoint string

	// Seed makes the simulator deterministic. Zero seeds from the clock.
	Seed int64

	// IDs overrides the simulator's job ID generator (for testing).
	// If nil, defaults to UUIDv7Generator.
	IDs IDGenerator
}

// Resolve maps a target identifier onto a ready-to-use Backend.
//
// The remote target needs an endpoint: the explicit Endpoint setting if
// given, otherwise the environment variable named by the device profile.
// A missing endpoint is a ConfigError naming the variable consulted.
func Resolve(cfg Config) (Backend, error) {
	if cfg.Device == nil {
		return nil, &ConfigError{Setting: "device", Reason: "no device profile selected"}
	}

	switch cfg.Target {
	case TargetSimulator:
		opts := []SimulatorOption{WithSeed(cfg.Seed)}
		if cfg.IDs != nil {
			opts = append(opts, WithIDGenerator(cfg.IDs))
		}
		return NewSimulator(cfg.Device, opts...), nil

	case TargetRemote:
		endpoint := cfg.Endpoint
		if endpoint == "" && cfg.Device.EndpointEnv != "" {
			endpoint = os.Getenv(cfg.Device.EndpointEnv)
		}
		if endpoint == "" {
			setting := cfg.Device.EndpointEnv
			if setting == "" {
				setting = "endpoint"
			}
			return nil, &ConfigError{
				Setting: setting,
				Reason:  fmt.Sprintf("no endpoint for device %s; set %s or pass --endpoint", cfg.Device.ID, setting),
			}
		}
		return NewRemote(endpoint, cfg.Device), nil

	default:
		return nil, &circuit.InvalidInputError{
			Field:  "target",
			Reason: fmt.Sprintf("unknown target %q: must be one of %v", cfg.Target, ValidTargets),
		}
	}
}

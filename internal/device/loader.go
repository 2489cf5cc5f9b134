package device

import (
	_ "embed"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"
)

//go:embed helmi.cue
var builtinCUE string

// Builtin compiles the embedded device profiles.
func Builtin() ([]*Device, error) {
	ctx := cuecontext.New()
	v := ctx.CompileString(builtinCUE, cue.Filename("helmi.cue"))
	if err := v.Err(); err != nil {
		return nil, fmt.Errorf("builtin profiles: %w", formatCUEError(err))
	}
	return compileAll(v)
}

// LoadDir compiles every CUE profile under dir.
func LoadDir(dir string) ([]*Device, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("profiles directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("profiles path is not a directory: %s", dir)
	}

	ctx := cuecontext.New()
	instances := load.Instances([]string{"."}, &load.Config{Dir: dir})
	if len(instances) == 0 {
		return nil, fmt.Errorf("no CUE instances in %s", dir)
	}
	inst := instances[0]
	if inst.Err != nil {
		return nil, fmt.Errorf("loading profiles: %w", formatCUEError(inst.Err))
	}
	v := ctx.BuildInstance(inst)
	if err := v.Err(); err != nil {
		return nil, fmt.Errorf("building profiles: %w", formatCUEError(err))
	}
	return compileAll(v)
}

// Load returns the builtin profiles merged with those from dir, if dir is
// non-empty. A directory profile with the same id replaces the builtin
// one. Results are ordered by id.
func Load(dir string) ([]*Device, error) {
	devices, err := Builtin()
	if err != nil {
		return nil, err
	}
	if dir != "" {
		extra, err := LoadDir(dir)
		if err != nil {
			return nil, err
		}
		for _, d := range extra {
			if _, exists := Find(devices, d.ID); exists {
				for i := range devices {
					if devices[i].ID == d.ID {
						devices[i] = d
					}
				}
			} else {
				devices = append(devices, d)
			}
		}
	}
	sortByID(devices)
	return devices, nil
}

// compileAll extracts every profile under the top-level "device" struct.
func compileAll(v cue.Value) ([]*Device, error) {
	devicesVal := v.LookupPath(cue.ParsePath("device"))
	if !devicesVal.Exists() {
		return nil, fmt.Errorf("no device profiles defined")
	}
	iter, err := devicesVal.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}
	var devices []*Device
	for iter.Next() {
		dev, err := CompileDevice(iter.Value())
		if err != nil {
			return nil, err
		}
		devices = append(devices, dev)
	}
	if len(devices) == 0 {
		return nil, fmt.Errorf("no device profiles defined")
	}
	sortByID(devices)
	return devices, nil
}

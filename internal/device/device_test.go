package device

import (
	"os"
	"path/filepath"
	"testing"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinHelmi(t *testing.T) {
	devices, err := Builtin()
	require.NoError(t, err)
	require.Len(t, devices, 1)

	helmi := devices[0]
	assert.Equal(t, "helmi", helmi.ID)
	assert.Equal(t, 5, helmi.NumQubits)
	assert.Equal(t, []string{"QB1", "QB2", "QB3", "QB4", "QB5"}, helmi.Names)
	assert.Equal(t, "HELMI_CORTEX_URL", helmi.EndpointEnv)
	assert.Len(t, helmi.Coupling, 4, "star topology has four edges")
	assert.NoError(t, helmi.Validate())
}

func TestQubitName(t *testing.T) {
	devices, err := Builtin()
	require.NoError(t, err)
	helmi := devices[0]

	assert.Equal(t, "QB1", helmi.QubitName(0))
	assert.Equal(t, "QB3", helmi.QubitName(2))
	assert.Equal(t, "", helmi.QubitName(5))
	assert.Equal(t, "", helmi.QubitName(-1))
}

func compileProfile(t *testing.T, src, path string) (*Device, error) {
	t.Helper()
	ctx := cuecontext.New()
	v := ctx.CompileString(src)
	require.NoError(t, v.Err())
	return CompileDevice(v.LookupPath(cue.ParsePath(path)))
}

func TestCompileDeviceDefaults(t *testing.T) {
	dev, err := compileProfile(t, `device: tiny: { qubits: 3 }`, "device.tiny")
	require.NoError(t, err)

	assert.Equal(t, "tiny", dev.ID)
	assert.Equal(t, "tiny", dev.Label, "label defaults to the profile id")
	assert.Equal(t, []string{"QB1", "QB2", "QB3"}, dev.Names, "names default to QB<n>")
	assert.Equal(t, "", dev.EndpointEnv)
	assert.Empty(t, dev.Coupling)
}

func TestCompileDeviceErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		path string
	}{
		{
			name: "missing qubits",
			src:  `device: bad: { label: "no size" }`,
			path: "device.bad",
		},
		{
			name: "name count mismatch",
			src:  `device: bad: { qubits: 2, names: ["QB1"] }`,
			path: "device.bad",
		},
		{
			name: "duplicate names",
			src:  `device: bad: { qubits: 2, names: ["QB1", "QB1"] }`,
			path: "device.bad",
		},
		{
			name: "coupling off device",
			src:  `device: bad: { qubits: 2, coupling: [[0, 5]] }`,
			path: "device.bad",
		},
		{
			name: "coupling self edge",
			src:  `device: bad: { qubits: 2, coupling: [[1, 1]] }`,
			path: "device.bad",
		},
		{
			name: "coupling not a pair",
			src:  `device: bad: { qubits: 3, coupling: [[0, 1, 2]] }`,
			path: "device.bad",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := compileProfile(t, tt.src, tt.path)
			assert.Error(t, err)
		})
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	profile := `device: mock9: {
	label:  "Mock 9Q"
	qubits: 9
}
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "mock9.cue"), []byte(profile), 0o644))

	devices, err := LoadDir(dir)
	require.NoError(t, err)
	require.Len(t, devices, 1)
	assert.Equal(t, "mock9", devices[0].ID)
	assert.Equal(t, 9, devices[0].NumQubits)
	assert.Equal(t, "QB9", devices[0].QubitName(8))
}

func TestLoadMergesAndOverrides(t *testing.T) {
	dir := t.TempDir()
	profile := `device: {
	helmi: {
		label:  "Helmi (patched)"
		qubits: 5
	}
	extra: {
		qubits: 2
	}
}
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "profiles.cue"), []byte(profile), 0o644))

	devices, err := Load(dir)
	require.NoError(t, err)
	require.Len(t, devices, 2)

	helmi, ok := Find(devices, "helmi")
	require.True(t, ok)
	assert.Equal(t, "Helmi (patched)", helmi.Label, "directory profile replaces builtin")

	_, ok = Find(devices, "extra")
	assert.True(t, ok)

	assert.Equal(t, "extra", devices[0].ID, "profiles are ordered by id")
	assert.Equal(t, "helmi", devices[1].ID)
}

func TestLoadWithoutDir(t *testing.T) {
	devices, err := Load("")
	require.NoError(t, err)
	require.Len(t, devices, 1)
	assert.Equal(t, "helmi", devices[0].ID)
}

func TestLoadDirMissing(t *testing.T) {
	_, err := LoadDir(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

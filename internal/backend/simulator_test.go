package backend

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FiQCI/qflip/internal/circuit"
)

func TestSimulatorFlipAllQubits(t *testing.T) {
	s := NewSimulator(testDevice(t), WithSeed(1), WithIDGenerator(NewFixedIDGenerator("sim-0001")))

	h, err := s.Submit(context.Background(), flipJob(t, []int{0, 1, 2, 3, 4}, 1000))
	require.NoError(t, err)
	assert.Equal(t, "sim-0001", h.ID())

	res, err := h.Result(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Counts{"11111": 1000}, res.Counts)
	assert.Equal(t, []string{"QB1", "QB2", "QB3", "QB4", "QB5"}, res.PhysicalNames)
	assert.Empty(t, res.CalibrationSetID, "the simulator has no calibration sets")
}

func TestSimulatorSingleQubitPlacement(t *testing.T) {
	s := NewSimulator(testDevice(t), WithSeed(3))

	h, err := s.Submit(context.Background(), flipJob(t, []int{4}, 200))
	require.NoError(t, err)

	res, err := h.Result(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Counts{"1": 200}, res.Counts)
	assert.Equal(t, []string{"QB5"}, res.PhysicalNames, "register position 0 realized on the requested qubit")
}

func TestSimulatorRejectsZeroShots(t *testing.T) {
	s := NewSimulator(testDevice(t), WithSeed(1))

	_, err := s.Submit(context.Background(), flipJob(t, []int{0}, 0))
	require.Error(t, err)
	assert.True(t, circuit.IsInvalidInput(err))
}

func TestSimulatorRejectsPlacementOffDevice(t *testing.T) {
	s := NewSimulator(testDevice(t), WithSeed(1))

	_, err := s.Submit(context.Background(), flipJob(t, []int{5}, 100))
	require.Error(t, err)
	assert.True(t, IsSubmitError(err))
}

func TestSimulatorRejectsDuplicatePlacement(t *testing.T) {
	s := NewSimulator(testDevice(t), WithSeed(1))

	_, err := s.Submit(context.Background(), flipJob(t, []int{2, 2}, 100))
	require.Error(t, err)
	assert.True(t, IsSubmitError(err))
}

func TestSimulatorRejectsNilCircuit(t *testing.T) {
	s := NewSimulator(testDevice(t), WithSeed(1))

	_, err := s.Submit(context.Background(), Job{Shots: 100})
	require.Error(t, err)
	assert.True(t, circuit.IsInvalidInput(err))
}

func TestSimulatorBellDefaultPlacement(t *testing.T) {
	s := NewSimulator(testDevice(t), WithSeed(11))

	h, err := s.Submit(context.Background(), Job{Circuit: circuit.Bell(), Shots: 500})
	require.NoError(t, err)

	res, err := h.Result(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 500, res.Counts.Total())
	for key := range res.Counts {
		assert.Contains(t, []string{"00", "11"}, key)
	}
	assert.Equal(t, []string{"QB1", "QB2"}, res.PhysicalNames, "nil layout realizes as identity placement")
}

func TestSimulatorSeedStable(t *testing.T) {
	run := func() Counts {
		s := NewSimulator(testDevice(t), WithSeed(99))
		h, err := s.Submit(context.Background(), Job{Circuit: circuit.Bell(), Shots: 300})
		require.NoError(t, err)
		res, err := h.Result(context.Background())
		require.NoError(t, err)
		return res.Counts
	}
	assert.Equal(t, run(), run())
}

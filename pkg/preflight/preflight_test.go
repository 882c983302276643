package preflight

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockExecutor is a mock command executor for testing.
type MockExecutor struct {
	LookPathFunc func(file string) (string, error)
	Calls        []string
}

func (m *MockExecutor) LookPath(file string) (string, error) {
	m.Calls = append(m.Calls, "lookpath:"+file)
	if m.LookPathFunc != nil {
		return m.LookPathFunc(file)
	}
	return "/usr/bin/" + file, nil
}

func (m *MockExecutor) Run(_ context.Context, name string, args ...string) (string, error) {
	m.Calls = append(m.Calls, "run:"+name)
	return "", nil
}

func (m *MockExecutor) RunInteractive(_ context.Context, name string, args ...string) error {
	m.Calls = append(m.Calls, "interactive:"+name)
	return nil
}

// MockProber records whether the network probe was attempted.
type MockProber struct {
	Err    error
	Probed bool
}

func (m *MockProber) Probe(_ context.Context) error {
	m.Probed = true
	return m.Err
}

func TestRun_AllChecksPass(t *testing.T) {
	exec := &MockExecutor{}
	prober := &MockProber{}
	checker := NewCheckerWith(exec, prober, func() int { return 1000 }, []string{"dnf", "flatpak"})

	err := checker.Run(context.Background())

	require.NoError(t, err)
	assert.True(t, prober.Probed)
}

func TestRun_MissingToolDetectedBeforeNetwork(t *testing.T) {
	// Even with the network also down, the missing tool is what's reported:
	// the probe must never be attempted.
	exec := &MockExecutor{
		LookPathFunc: func(file string) (string, error) {
			return "", errors.New("not found")
		},
	}
	prober := &MockProber{Err: errors.New("no network")}
	checker := NewCheckerWith(exec, prober, func() int { return 1000 }, []string{"dnf"})

	err := checker.Run(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "dnf")
	assert.False(t, prober.Probed)
}

func TestRun_RootRefused(t *testing.T) {
	exec := &MockExecutor{}
	prober := &MockProber{}
	checker := NewCheckerWith(exec, prober, func() int { return 0 }, []string{"dnf"})

	err := checker.Run(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "root")
	assert.False(t, prober.Probed)
}

func TestRun_NetworkFailure(t *testing.T) {
	exec := &MockExecutor{}
	prober := &MockProber{Err: errors.New("unreachable")}
	checker := NewCheckerWith(exec, prober, func() int { return 1000 }, []string{"dnf"})

	err := checker.Run(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "network")
}

func TestCheckAll_ReportsEverything(t *testing.T) {
	exec := &MockExecutor{
		LookPathFunc: func(file string) (string, error) {
			if file == "flatpak" {
				return "", errors.New("not found")
			}
			return "/usr/bin/" + file, nil
		},
	}
	prober := &MockProber{Err: errors.New("unreachable")}
	checker := NewCheckerWith(exec, prober, func() int { return 1000 }, []string{"dnf", "flatpak"})

	checks := checker.CheckAll(context.Background())

	require.Len(t, checks, 4) // two tools + user + network
	assert.Equal(t, StatusOK, checks[0].Status)
	assert.Equal(t, StatusFailed, checks[1].Status)
	assert.Equal(t, StatusOK, checks[2].Status)
	assert.Equal(t, StatusFailed, checks[3].Status)
}

func TestCheckStatus_String(t *testing.T) {
	assert.Equal(t, "ok", StatusOK.String())
	assert.Equal(t, "failed", StatusFailed.String())
}

package doctor

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// mockCheck implements Check and Fixer for testing.
type mockCheck struct {
	mock.Mock
}

func (m *mockCheck) Name() string     { return m.Called().String(0) }
func (m *mockCheck) Category() string { return m.Called().String(0) }

func (m *mockCheck) Run() *CheckResult {
	res, _ := m.Called().Get(0).(*CheckResult)
	return res
}

func (m *mockCheck) CanFix() bool { return m.Called().Bool(0) }

func (m *mockCheck) Fix() []FixResult {
	res, _ := m.Called().Get(0).([]FixResult)
	return res
}

// staticCheck implements Check only.
type staticCheck struct {
	status Severity
}

func (c staticCheck) Name() string     { return "static" }
func (c staticCheck) Category() string { return "test" }
func (c staticCheck) Run() *CheckResult {
	return &CheckResult{Name: c.Name(), Category: c.Category(), Status: c.status}
}

func newMockCheck(t *testing.T, status Severity) *mockCheck {
	m := &mockCheck{}
	m.On("Run").Return(&CheckResult{Name: "mock", Category: "test", Status: status}).Once()
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func TestRunner_Run(t *testing.T) {
	r := NewRunner()
	fixed := time.Date(2026, 10, 15, 9, 30, 0, 0, time.FixedZone("x", 3600))
	r.now = func() time.Time { return fixed }

	for _, s := range []Severity{SeverityPass, SeverityPass, SeverityInfo, SeverityWarning, SeverityError} {
		r.AddCheck(newMockCheck(t, s))
	}

	report := r.Run()
	require.Len(t, report.Results, 5)
	assert.Equal(t, Summary{Passed: 2, Info: 1, Warnings: 1, Errors: 1}, report.Summary)
	assert.True(t, report.HasErrors())
	assert.True(t, report.HasWarnings())
	assert.Equal(t, fixed.UTC(), report.Timestamp)
}

func TestRunner_SkipsNilResults(t *testing.T) {
	r := NewRunner()
	m := &mockCheck{}
	m.On("Run").Return(nil)
	r.AddCheck(m)

	report := r.Run()
	assert.Empty(t, report.Results)
	assert.False(t, report.HasErrors())
	assert.False(t, report.HasWarnings())
}

func TestRunner_Fix(t *testing.T) {
	r := NewRunner()

	r.AddCheck(staticCheck{status: SeverityPass})

	idle := newMockCheck(t, SeverityPass)
	idle.On("CanFix").Return(false)
	r.AddCheck(idle)

	busy := newMockCheck(t, SeverityWarning)
	busy.On("CanFix").Return(true)
	busy.On("Fix").Return([]FixResult{{Target: "Cursor: a.x", Fixed: true}})
	r.AddCheck(busy)

	r.Run()
	fixes := r.Fix()
	require.Len(t, fixes, 1)
	assert.Equal(t, "Cursor: a.x", fixes[0].Target)
	idle.AssertNotCalled(t, "Fix")
}

func TestSeverity_Text(t *testing.T) {
	tests := []struct {
		s    Severity
		want string
	}{
		{SeverityPass, "pass"},
		{SeverityInfo, "info"},
		{SeverityWarning, "warning"},
		{SeverityError, "error"},
		{Severity(99), "unknown"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.s.String())
	}

	data, err := json.Marshal(&CheckResult{Name: "n", Status: SeverityWarning})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"status":"warning"`)

	var back CheckResult
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, SeverityWarning, back.Status)

	var s Severity
	assert.Error(t, s.UnmarshalText([]byte("fatal")))
}

//	mockgen -source=internal/engine/telemetry.go -destination=internal/engine/mocks/mock_telemetry.go -package=mocks
//

// Package mocks is a generated GoMock package.
package mocks

import (
	reflect "reflect"
	time "time"

	domain "github.com/iho/trxledger/internal/domain"
	gomock "go.uber.org/mock/gomock"
)

// MockTelemetry is a mock of Telemetry interface.
type MockTelemetry struct {
	ctrl     *gomock.Controller
	recorder *MockTelemetryMockRecorder
	isgomock struct{}
}

// MockTelemetryMockRecorder is the mock recorder for MockTelemetry.
type MockTelemetryMockRecorder struct {
	mock *MockTelemetry
}

// NewMockTelemetry creates a new mock instance.
func NewMockTelemetry(ctrl *gomock.Controller) *MockTelemetry {
	mock := &MockTelemetry{ctrl: ctrl}
	mock.recorder = &MockTelemetryMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockTelemetry) EXPECT() *MockTelemetryMockRecorder {
	return m.recorder
}

// EventAccepted mocks base method.
func (m *MockTelemetry) EventAccepted(ev domain.Event) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "EventAccepted", ev)
}

// EventAccepted indicates an expected call of EventAccepted.
func (mr *MockTelemetryMockRecorder) EventAccepted(ev any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "EventAccepted", reflect.TypeOf((*MockTelemetry)(nil).EventAccepted), ev)
}

// EventIgnored mocks base method.
func (m *MockTelemetry) EventIgnored(ev domain.Event, reason error) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "EventIgnored", ev, reason)
}

// EventIgnored indicates an expected call of EventIgnored.
func (mr *MockTelemetryMockRecorder) EventIgnored(ev, reason any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "EventIgnored", reflect.TypeOf((*MockTelemetry)(nil).EventIgnored), ev, reason)
}

// Duration mocks base method.
func (m *MockTelemetry) Duration(d time.Duration) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "Duration", d)
}

// Duration indicates an expected call of Duration.
func (mr *MockTelemetryMockRecorder) Duration(d any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Duration", reflect.TypeOf((*MockTelemetry)(nil).Duration), d)
}

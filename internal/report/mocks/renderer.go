package mocks

import "github.com/user/rdplot_go/internal/report"
import "github.com/stretchr/testify/mock"

// Renderer mock
type Renderer struct {
	mock.Mock
}

// NewChart provides a mock function with given fields:
func (_m *Renderer) NewChart() report.Chart {
	ret := _m.Called()

	var r0 report.Chart
	if rf, ok := ret.Get(0).(func() report.Chart); ok {
		r0 = rf()
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(report.Chart)
		}
	}

	return r0
}

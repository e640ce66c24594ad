package mocks

import "github.com/stretchr/testify/mock"

// Chart mock
type Chart struct {
	mock.Mock
}

// AddSeries provides a mock function with given fields: x, y, label
func (_m *Chart) AddSeries(x []float64, y []float64, label string) error {
	ret := _m.Called(x, y, label)

	var r0 error
	if rf, ok := ret.Get(0).(func([]float64, []float64, string) error); ok {
		r0 = rf(x, y, label)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// SetAxisTitles provides a mock function with given fields: x, y
func (_m *Chart) SetAxisTitles(x string, y string) {
	_m.Called(x, y)
}

// SetLegendTitle provides a mock function with given fields: title
func (_m *Chart) SetLegendTitle(title string) {
	_m.Called(title)
}

// SetTitle provides a mock function with given fields: title
func (_m *Chart) SetTitle(title string) {
	_m.Called(title)
}

// Export provides a mock function with given fields: path
func (_m *Chart) Export(path string) error {
	ret := _m.Called(path)

	var r0 error
	if rf, ok := ret.Get(0).(func(string) error); ok {
		r0 = rf(path)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

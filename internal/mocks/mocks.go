// Package mocks provides testify mocks for the model interfaces and the
// service dependencies of the HTTP layer.
package mocks

import (
	"github.com/stretchr/testify/mock"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

func register(m *mock.Mock, t testingT) {
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
}

// value returns the i-th return value as T, or T's zero value when nil.
func value[T any](ret mock.Arguments, i int) T {
	var zero T
	v := ret.Get(i)
	if v == nil {
		return zero
	}
	return v.(T)
}

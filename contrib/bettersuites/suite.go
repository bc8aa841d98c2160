// Package suites runs every exported TestXxx(*testing.T) method of a value
// as a subtest. It is used for reusable adapter contract tests.
package suites

import (
	"cmp"
	"fmt"
	"reflect"
	"slices"
	"strings"
	"testing"
)

type (
	BeforeSuite interface{ BeforeSuite(t *testing.T) }
	AfterSuite  interface{ AfterSuite(t *testing.T) }
	BeforeTest  interface{ BeforeTest(t *testing.T) }
	AfterTest   interface{ AfterTest(t *testing.T) }
)

var testingT = reflect.TypeFor[*testing.T]()

// Run builds a test function out of suite. Hooks are optional; BeforeTest and
// AfterTest get the subtest's *testing.T, AfterTest runs even if the test
// failed.
func Run(suite any) func(t *testing.T) {
	methods := testMethods(reflect.TypeOf(suite))
	if len(methods) == 0 {
		panic(fmt.Sprintf("No test methods found in %T", suite))
	}

	receiver := reflect.ValueOf(suite)

	return func(t *testing.T) {
		t.Helper()

		if s, ok := suite.(BeforeSuite); ok {
			s.BeforeSuite(t)
		}
		if s, ok := suite.(AfterSuite); ok {
			t.Cleanup(func() { s.AfterSuite(t) })
		}

		for _, method := range methods {
			t.Run(strings.TrimPrefix(method.Name, "Test"), func(t *testing.T) {
				if s, ok := suite.(BeforeTest); ok {
					s.BeforeTest(t)
				}
				if s, ok := suite.(AfterTest); ok {
					t.Cleanup(func() { s.AfterTest(t) })
				}

				method.Func.Call([]reflect.Value{receiver, reflect.ValueOf(t)})
			})
		}
	}
}

func testMethods(typ reflect.Type) []reflect.Method {
	var res []reflect.Method
	for i := range typ.NumMethod() {
		method := typ.Method(i)
		if !strings.HasPrefix(method.Name, "Test") {
			continue
		}
		if method.Type.NumIn() != 2 || method.Type.In(1) != testingT || method.Type.NumOut() != 0 {
			continue
		}

		res = append(res, method)
	}

	slices.SortFunc(res, func(a, b reflect.Method) int { return cmp.Compare(a.Name, b.Name) })

	return res
}

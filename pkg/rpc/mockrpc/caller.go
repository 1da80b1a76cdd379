// Package mockrpc provides a mock for the rpc.Caller interface
package mockrpc

import (
	"context"
	"sync"

	"github.com/dydra/dydra/pkg/rpc"
)

var _ rpc.Caller = &CallerMock{}

// CallerMock is a mock implementation of rpc.Caller.
//
//	func TestSomethingThatUsesCaller(t *testing.T) {
//		mockedCaller := &CallerMock{
//			CallFunc: func(ctx context.Context, method string, args ...interface{}) (interface{}, error) {
//				panic("mock out the Call method")
//			},
//		}
//		// use mockedCaller in code that requires rpc.Caller
//	}
type CallerMock struct {
	// CallFunc mocks the Call method.
	CallFunc func(ctx context.Context, method string, args ...interface{}) (interface{}, error)

	calls struct {
		// Call holds details about calls to the Call method.
		Call []CallerMockCall
	}
	lockCall sync.RWMutex
}

// CallerMockCall holds the arguments of a recorded call
type CallerMockCall struct {
	// Ctx is the ctx argument value.
	Ctx context.Context
	// Method is the method argument value.
	Method string
	// Args holds the args argument value.
	Args []interface{}
}

// Call calls CallFunc.
func (mock *CallerMock) Call(ctx context.Context, method string, args ...interface{}) (interface{}, error) {
	if mock.CallFunc == nil {
		panic("CallerMock.CallFunc: method is nil but Caller.Call was just called")
	}
	mock.lockCall.Lock()
	mock.calls.Call = append(mock.calls.Call, CallerMockCall{Ctx: ctx, Method: method, Args: args})
	mock.lockCall.Unlock()
	return mock.CallFunc(ctx, method, args...)
}

// CallCalls gets all the calls that were made to Call.
//
// Check the length with:
//
//	len(mockedCaller.CallCalls())
func (mock *CallerMock) CallCalls() []CallerMockCall {
	mock.lockCall.RLock()
	defer mock.lockCall.RUnlock()
	return append([]CallerMockCall(nil), mock.calls.Call...)
}

// Methods lists the methods called so far, in order
func (mock *CallerMock) Methods() []string {
	calls := mock.CallCalls()
	methods := make([]string, 0, len(calls))
	for _, c := range calls {
		methods = append(methods, c.Method)
	}
	return methods
}

// Responder answers calls from a table of canned results, keyed by method name.
//
// Unknown methods panic, so unexpected calls are caught by tests.
func Responder(results map[string]interface{}) func(context.Context, string, ...interface{}) (interface{}, error) {
	return func(_ context.Context, method string, _ ...interface{}) (interface{}, error) {
		result, ok := results[method]
		if !ok {
			panic("unexpected call to " + method)
		}
		if err, isErr := result.(error); isErr {
			return nil, err
		}
		return result, nil
	}
}

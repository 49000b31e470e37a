package resources

import (
	"context"
	"io"

	"github.com/sirupsen/logrus"
)

type fakeCall struct {
	endpoint string
	payload  map[string]any
	method   string
}

// fakeCaller records connector calls and plays back one canned response.
type fakeCaller struct {
	calls []fakeCall
	resp  map[string]any
	err   error
}

func (f *fakeCaller) Call(_ context.Context, endpoint string, payload map[string]any, method string) (map[string]any, error) {
	f.calls = append(f.calls, fakeCall{endpoint: endpoint, payload: payload, method: method})
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

package util

import (
	"encoding/json"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
)

type nopLogger struct{}

func (nopLogger) Errorf(string, ...interface{}) {}
func (nopLogger) Warnf(string, ...interface{})  {}
func (nopLogger) Debugf(string, ...interface{}) {}

// NewRestyClient builds the outbound JSON client used for partner APIs.
// Retries follow retryablehttp's default policy (connection errors and
// 5xx), which is safe for the idempotent gateway calls we make.
func NewRestyClient() *resty.Client {
	c := resty.
		New().
		SetRetryCount(3).
		SetLogger(nopLogger{}).
		SetTimeout(10 * time.Second).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			retry, _ := retryablehttp.DefaultRetryPolicy(r.Request.Context(), r.RawResponse, err)
			return retry
		})
	c.JSONMarshal = json.Marshal
	c.JSONUnmarshal = json.Unmarshal
	return c
}

// Ptr returns a pointer to any value.
func Ptr[T any](t T) *T {
	return &t
}

// Val returns the value behind p, or the zero value for a nil pointer.
func Val[T any](p *T) T {
	if p != nil {
		return *p
	}
	var def T
	return def
}

// ConvertList maps listA through convert.
func ConvertList[A any, B any](listA []A, convert func(A) B) []B {
	listB := make([]B, len(listA))
	for i, a := range listA {
		listB[i] = convert(a)
	}
	return listB
}

package observability

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	p := NoopProfileHooks{}
	p.OnBuildStart(ctx, "octocat")
	p.OnStepStart(ctx, "octocat", "repositories")
	p.OnStepComplete(ctx, "octocat", "repositories", time.Second, nil)
	p.OnBuildComplete(ctx, "octocat", 2, time.Second, errors.New("boom"))

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "http:json:abc")
	c.OnCacheMiss(ctx, "http:json:abc")
	c.OnCacheSet(ctx, "http:json:abc", 1024)

	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "GET", "api.github.com", "/users/octocat")
	h.OnResponse(ctx, "GET", "api.github.com", "/users/octocat", 200, time.Second)
	h.OnError(ctx, "GET", "api.github.com", "/users/octocat", nil)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Profile().(NoopProfileHooks); !ok {
		t.Error("Profile() should return NoopProfileHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	customProfile := &testProfileHooks{}
	SetProfileHooks(customProfile)
	if Profile() != customProfile {
		t.Error("SetProfileHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	customHTTP := &testHTTPHooks{}
	SetHTTPHooks(customHTTP)
	if HTTP() != customHTTP {
		t.Error("SetHTTPHooks should set custom hooks")
	}

	Reset()
	if _, ok := Profile().(NoopProfileHooks); !ok {
		t.Error("Reset() should restore NoopProfileHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	defer Reset()

	custom := &testProfileHooks{}
	SetProfileHooks(custom)
	SetProfileHooks(nil)

	if Profile() != custom {
		t.Error("SetProfileHooks(nil) should be ignored")
	}
}

type testProfileHooks struct{ NoopProfileHooks }
type testCacheHooks struct{ NoopCacheHooks }
type testHTTPHooks struct{ NoopHTTPHooks }

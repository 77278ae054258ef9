package di_test

import (
	"sync/atomic"
	"testing"

	"github.com/sghaida/smartdi/di"
	"github.com/stretchr/testify/require"
)

//
// -----------------------------------------------------------------------------
// Shared fixtures
// -----------------------------------------------------------------------------

type testLogger struct{ Prefix string }

// testService is a singleton component autowired with the "logger" built-in.
type testService struct {
	Log *testLogger `di:"logger"`
}

var serviceType = di.DefineType("Service",
	di.Func(func(di.Options) *testService { return &testService{} }),
	di.Component(),
)

// storeBase is an abstract base type; memStore and redisStore extend it.
var storeBase = di.DefineType("Store", nil)

type memStore struct{ Opts di.Options }

var memStoreType = di.DefineType("MemStore",
	di.Func(func(o di.Options) *memStore { return &memStore{Opts: o} }),
	di.Extends(storeBase),
	di.WithLifetime(di.Transient),
	di.WithOptions(di.Options{"size": 16}),
)

type redisStore struct{}

var redisStoreType = di.DefineType("RedisStore",
	di.Func(func(di.Options) *redisStore { return &redisStore{} }),
	di.Extends(storeBase),
	di.Named("redis"),
)

// cycX and cycY are transient components autowiring each other by name.
type cycX struct {
	Y *cycY `di:"y"`
}

type cycY struct {
	X *cycX `di:"x"`
}

var (
	cycXType = di.DefineType("X",
		di.Func(func(di.Options) *cycX { return &cycX{} }),
		di.Named("x"), di.WithLifetime(di.Transient),
	)
	cycYType = di.DefineType("Y",
		di.Func(func(di.Options) *cycY { return &cycY{} }),
		di.Named("y"), di.WithLifetime(di.Transient),
	)
)

// counted returns a singleton component type whose constructor increments calls.
func counted(name string, calls *atomic.Int32) *di.Type {
	return di.DefineType(name,
		di.Func(func(di.Options) *testService {
			calls.Add(1)
			return &testService{}
		}),
		di.Component(),
	)
}

//
// -----------------------------------------------------------------------------
// Helpers
// -----------------------------------------------------------------------------

// mustAutowire wires a new container and fails the test on error.
func mustAutowire(t *testing.T, opts di.AutowireOptions) *di.Container {
	t.Helper()
	c := di.New()
	require.NoError(t, c.Autowire(opts))
	return c
}

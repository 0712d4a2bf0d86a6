package helper

import (
	"fmt"
	"math/rand/v2"
	"os"
	"testing"

	"github.com/AntonStoeckl/library-lending-go/lendingstore/postgresengine"
	"github.com/AntonStoeckl/library-lending-go/testutil/helper/postgreswrapper"
)

// PostgresDSNEnv names the DSN of a disposable PostgreSQL database for integration tests.
const PostgresDSNEnv = "LIBRARY_TEST_POSTGRES_DSN"

// GivenPostgresWrapper connects to the database in LIBRARY_TEST_POSTGRES_DSN, or skips the test
// when it is not set. Each call gets its own random table prefix so tests do not share rows.
func GivenPostgresWrapper(t testing.TB, options ...postgresengine.Option) (postgreswrapper.Wrapper, string) {
	t.Helper()

	dsn := os.Getenv(PostgresDSNEnv)
	if dsn == "" {
		t.Skipf("%s not set", PostgresDSNEnv)
	}

	prefix := fmt.Sprintf("t%08x_", rand.Uint32())

	return postgreswrapper.CreateWrapper(t, dsn, prefix, options...), prefix
}

// GivenPostgresStore is GivenPostgresWrapper for tests that only need the Store.
func GivenPostgresStore(t testing.TB, options ...postgresengine.Option) *postgresengine.Store {
	t.Helper()

	wrapper, _ := GivenPostgresWrapper(t, options...)

	return wrapper.Store()
}

package testutil

import (
	"fmt"

	"github.com/jbweber/homelab/clinic/internal/datastore"
)

// NewTestDSN generates a DSN for an in-memory SQLite database for testing purposes.
// Foreign keys are enforced on every connection.
func NewTestDSN(testName string) string {
	return datastore.DSN(fmt.Sprintf("file:%s?mode=memory&cache=shared", testName))
}

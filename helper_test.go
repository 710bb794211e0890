package ledgerline

import (
	"os"
	"testing"
)

// Test helpers to build journal lines tersely.

// dr returns a debit line.
func dr(on, account string, c Category, amount float64) CanonicalTransaction {
	return CanonicalTransaction{Date: MustParseDate(on), Account: account, Category: c, Debit: A(amount)}
}

// cr returns a credit line.
func cr(on, account string, c Category, amount float64) CanonicalTransaction {
	return CanonicalTransaction{Date: MustParseDate(on), Account: account, Category: c, Credit: A(amount)}
}

func writeTestFile(t *testing.T, path, content string) error {
	t.Helper()
	return os.WriteFile(path, []byte(content), 0644)
}

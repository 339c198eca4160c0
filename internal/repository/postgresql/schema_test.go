package postgresql

import (
	"math"
	"os"
	"regexp"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Hour columns must hold any interval between two timestamps the API accepts.
func TestSchema_HourColumnsFitLongestInterval(t *testing.T) {
	ddl, err := os.ReadFile("../../../migrations/000001_init.up.sql")
	require.NoError(t, err)

	// time.Duration saturates at about 292 years, so count whole days.
	first := time.Date(1, 1, 1, 0, 0, 0, 0, time.UTC).Unix()
	last := time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC).Unix()
	maxHours := float64((last-first)/86400+1) * 24

	for _, column := range []string{"working_hours", "overtime_hours"} {
		m := regexp.MustCompile(column + `\s+NUMERIC\((\d+),\s*(\d+)\)`).FindStringSubmatch(string(ddl))
		require.Len(t, m, 3, "column %s not declared as NUMERIC(p, s)", column)

		precision, _ := strconv.Atoi(m[1])
		scale, _ := strconv.Atoi(m[2])
		assert.Greater(t, math.Pow10(precision-scale), maxHours, "%s overflows", column)
	}
}

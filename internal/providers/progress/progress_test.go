package progress

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReporterDropsNonIncreasingValues(t *testing.T) {
	var seen []int
	r := NewReporter(func(p int) { seen = append(seen, p) })

	for _, p := range []int{Started, Started, Dispatched, Prepared, Received, 150, Done} {
		r.Report(p)
	}

	require.Equal(t, []int{Started, Dispatched, Received, Done}, seen)
	require.Equal(t, Done, r.Last())
}

func TestNilCallbacks(t *testing.T) {
	var f Func
	f.Report(Started)

	r := NewReporter(nil)
	r.Report(Started)
	require.Equal(t, 0, r.Last())

	var nilReporter *Reporter
	nilReporter.Report(Done)
	require.Equal(t, 0, nilReporter.Last())
}

func TestFuncForwardsToReporter(t *testing.T) {
	var seen []int
	r := NewReporter(func(p int) { seen = append(seen, p) })
	fn := r.Func()
	fn.Report(Prepared)
	fn.Report(Prepared)
	require.Equal(t, []int{Prepared}, seen)
}

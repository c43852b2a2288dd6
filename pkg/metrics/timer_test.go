package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewTimer(t *testing.T) {
	timer := NewTimer()

	if timer == nil {
		t.Fatal("NewTimer() returned nil")
	}
	if timer.start.IsZero() {
		t.Error("NewTimer() start time is zero")
	}
}

func TestTimer_Duration(t *testing.T) {
	timer := NewTimer()
	time.Sleep(10 * time.Millisecond)

	d := timer.Duration()
	if d < 10*time.Millisecond {
		t.Errorf("Duration() = %v, want >= 10ms", d)
	}
}

func TestTimer_DurationIsMonotonic(t *testing.T) {
	timer := NewTimer()

	time.Sleep(5 * time.Millisecond)
	first := timer.Duration()

	time.Sleep(5 * time.Millisecond)
	second := timer.Duration()

	if second <= first {
		t.Errorf("second Duration() call should be longer: first=%v, second=%v", first, second)
	}
}

// ObserveDuration is what Coordinator.CreateDataflow uses to time a
// create_dataflow submission; exercise it against that exact histogram.
func TestTimer_ObserveDuration_DataflowCreate(t *testing.T) {
	before := testutil.CollectAndCount(DataflowCreateDuration)

	timer := NewTimer()
	time.Sleep(time.Millisecond)
	timer.ObserveDuration(DataflowCreateDuration)

	after := testutil.CollectAndCount(DataflowCreateDuration)
	if after != before+1 {
		t.Errorf("expected one new observation on lightflus_dataflow_create_duration_seconds, before=%d after=%d", before, after)
	}
}

// ObserveDuration against the probe-cycle histogram, as Cluster.ProbeState
// uses it.
func TestTimer_ObserveDuration_ProbeDuration(t *testing.T) {
	before := testutil.CollectAndCount(ProbeDuration)

	timer := NewTimer()
	timer.ObserveDuration(ProbeDuration)

	after := testutil.CollectAndCount(ProbeDuration)
	if after != before+1 {
		t.Errorf("expected one new observation on lightflus_probe_duration_seconds, before=%d after=%d", before, after)
	}
}

// ObserveDurationVec is what the RPC gateway would use to time one outbound
// call per method label; exercise it against that histogram vec.
func TestTimer_ObserveDurationVec_RPCCallDuration(t *testing.T) {
	method := "ReceiveHeartbeat"
	before := testutil.CollectAndCount(RPCCallDuration)

	timer := NewTimer()
	time.Sleep(time.Millisecond)
	timer.ObserveDurationVec(RPCCallDuration, method)

	after := testutil.CollectAndCount(RPCCallDuration)
	if after <= before {
		t.Errorf("expected a new observation series on lightflus_rpc_call_duration_seconds, before=%d after=%d", before, after)
	}
}

func TestTimer_MultipleTimersIndependent(t *testing.T) {
	timer1 := NewTimer()
	time.Sleep(10 * time.Millisecond)

	timer2 := NewTimer()
	time.Sleep(10 * time.Millisecond)

	if timer1.Duration() <= timer2.Duration() {
		t.Errorf("timer1 should be running longer: timer1=%v, timer2=%v", timer1.Duration(), timer2.Duration())
	}
}

package noncritical

import (
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogSwallowsAndRecordsFailure(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	log := zap.New(core)

	if ok := Log(log, "claim report", errors.New("boom"), zap.String("report_id", "r1")); ok {
		t.Fatal("expected failure to be reported as not ok")
	}
	if logs.Len() != 1 {
		t.Fatalf("unexpected log count: %d", logs.Len())
	}
	fields := logs.All()[0].ContextMap()
	if fields["op"] != "claim report" || fields["report_id"] != "r1" {
		t.Fatalf("unexpected log fields: %v", fields)
	}
}

func TestLogIgnoresSuccess(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)

	if ok := Log(zap.New(core), "release report", nil); !ok {
		t.Fatal("expected nil error to be ok")
	}
	if logs.Len() != 0 {
		t.Fatalf("success must not log, got %d entries", logs.Len())
	}
	if ok := Log(nil, "release report", errors.New("boom")); ok {
		t.Fatal("nil logger still reports failure")
	}
}

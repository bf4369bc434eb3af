package log

import "testing"

// recordingLogger captures messages for assertions.
type recordingLogger struct {
	messages []string
}

func (r *recordingLogger) Errorf(format string, args ...interface{}) { r.messages = append(r.messages, "error") }
func (r *recordingLogger) Warnf(format string, args ...interface{})  { r.messages = append(r.messages, "warn") }
func (r *recordingLogger) Infof(format string, args ...interface{})  { r.messages = append(r.messages, "info") }
func (r *recordingLogger) Debugf(format string, args ...interface{}) { r.messages = append(r.messages, "debug") }

func TestSetLogger(t *testing.T) {
	rec := &recordingLogger{}
	SetLogger(rec)
	defer SetLogger(NewHCLogger(nil))

	Errorf("e")
	Warnf("w %d", 1)
	Infof("i")
	Debugf("d")

	if len(rec.messages) != 4 {
		t.Fatalf("expected 4 captured messages, got %d", len(rec.messages))
	}
	if rec.messages[1] != "warn" {
		t.Errorf("unexpected message order: %v", rec.messages)
	}
}

func TestNewHCLogger_NilDefaults(t *testing.T) {
	l := NewHCLogger(nil)
	if l.l == nil {
		t.Error("expected a default hclog logger to be configured")
	}
}

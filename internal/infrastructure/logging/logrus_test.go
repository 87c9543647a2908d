package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNewWithOutput_JSON(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewWithOutput(&buf, "debug", "json")
	if err != nil {
		t.Fatalf("NewWithOutput: %v", err)
	}
	l.WithField("member_id", 7).Info("loan borrow")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not json: %q", buf.String())
	}
	if entry["msg"] != "loan borrow" || entry["member_id"] != float64(7) {
		t.Fatalf("unexpected entry: %v", entry)
	}
	if l.GetLevel() != logrus.DebugLevel {
		t.Fatalf("level = %v", l.GetLevel())
	}
}

func TestNew_BadLevel(t *testing.T) {
	if _, err := New("chatty", "text"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestGormLogger_WritesThroughLogrus(t *testing.T) {
	var buf bytes.Buffer
	l, _ := NewWithOutput(&buf, "info", "text")
	printer{l}.Printf("slow sql %d", 1)
	if !bytes.Contains(buf.Bytes(), []byte("slow sql 1")) || !bytes.Contains(buf.Bytes(), []byte("component=gorm")) {
		t.Fatalf("unexpected output: %q", buf.String())
	}
	if GormLogger(l) == nil {
		t.Fatalf("nil gorm logger")
	}
}

package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "motohub.log")
	log, err := New(Config{Level: "warn", Format: "json", Output: path})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	log.Info("dropped")
	log.Warn("kept")
	_ = log.Sync()

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	out := string(raw)
	if strings.Contains(out, "dropped") {
		t.Errorf("info line written at warn level: %s", out)
	}
	if !strings.Contains(out, `"msg":"kept"`) || !strings.Contains(out, `"timestamp"`) {
		t.Errorf("unexpected output: %s", out)
	}
}

func TestNew_Formats(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{format: "json"},
		{format: "console"},
		{format: ""},
		{format: "xml", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			_, err := New(Config{Level: "bogus", Format: tt.format})
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestLoggingIncludesRequiredFields(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(RequestID(), Logging())
	router.GET("/test", func(c *gin.Context) {
		c.Set("snapshotId", "snap-1")
		c.Set("jobId", "job-1")
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	origStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	os.Stdout = w
	defer func() {
		os.Stdout = origStdout
	}()

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	_ = w.Close()
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		t.Fatalf("read log output: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) == 0 {
		t.Fatalf("expected log output")
	}
	last := lines[len(lines)-1]
	var payload map[string]any
	if err := json.Unmarshal([]byte(last), &payload); err != nil {
		t.Fatalf("decode log json: %v", err)
	}

	required := []string{"request_id", "snapshot_id", "job_id", "duration_ms", "status", "method", "path"}
	for _, key := range required {
		if _, ok := payload[key]; !ok {
			t.Fatalf("missing log field: %s", key)
		}
	}
	if payload["snapshot_id"] != "snap-1" {
		t.Fatalf("unexpected snapshot_id: %v", payload["snapshot_id"])
	}
	if payload["job_id"] != "job-1" {
		t.Fatalf("unexpected job_id: %v", payload["job_id"])
	}
	if payload["request_id"] == "" {
		t.Fatalf("expected a request id")
	}
}

func TestLoggingSkipsPreflight(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(RequestID(), Logging())
	router.OPTIONS("/test", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	origStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	os.Stdout = w
	defer func() {
		os.Stdout = origStdout
	}()

	req := httptest.NewRequest(http.MethodOptions, "/test", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	_ = w.Close()
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		t.Fatalf("read log output: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "" {
		t.Fatalf("preflight requests must not be logged, got: %s", buf.String())
	}
}

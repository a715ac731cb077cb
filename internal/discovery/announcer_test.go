package discovery

import (
	"strings"
	"testing"
)

func TestInstanceName(t *testing.T) {
	if got := instanceName("my server"); got != "my server" {
		t.Errorf("instanceName() = %q, want the explicit name", got)
	}

	derived := instanceName("")
	if derived == "" {
		t.Fatal("instanceName(\"\") returned empty string")
	}
	if !strings.HasPrefix(derived, "Beginner HTTP Server on ") {
		t.Errorf("derived name = %q, want hostname-derived default", derived)
	}
}

package theme

import (
	"testing"

	"github.com/theirongolddev/pocket/internal/model"
)

func TestByNameFallsBackToDefault(t *testing.T) {
	if got := ByName("tokyo-night"); got.Name != "tokyo-night" {
		t.Errorf("ByName(tokyo-night) = %s", got.Name)
	}
	if got := ByName("no-such-theme"); got.Name != FlexokiDark.Name {
		t.Errorf("ByName(unknown) = %s, want %s", got.Name, FlexokiDark.Name)
	}
}

func TestTagColors(t *testing.T) {
	th := FlexokiDark
	tests := []struct {
		tag  string
		want string
	}{
		{"primary", string(th.Accent)},
		{"ACCENT", string(th.Highlight)},
		{"secondary", string(th.Secondary)},
		{"warning", string(th.Warning)},
		{"error", string(th.Critical)},
		{"success", string(th.Income)},
		{"", string(th.Accent)},
	}
	for _, tt := range tests {
		if got := string(th.Tag(tt.tag)); got != tt.want {
			t.Errorf("Tag(%q) = %s, want %s", tt.tag, got, tt.want)
		}
	}
}

func TestBucketColors(t *testing.T) {
	th := Terminal
	if th.Bucket(model.BucketNormal) != th.Income {
		t.Error("normal bucket should use the income color")
	}
	if th.Bucket(model.BucketWarning) != th.Warning {
		t.Error("warning bucket should use the warning color")
	}
	if th.Bucket(model.BucketCritical) != th.Critical {
		t.Error("critical bucket should use the critical color")
	}
}

package buildinfo

import (
	"strings"
	"testing"
)

func TestStrings(t *testing.T) {
	defer func(v string) { Version = v }(Version)
	Version = "v1.2.3"

	if !strings.Contains(String(), "version: v1.2.3") {
		t.Errorf("String() = %q", String())
	}
	if !strings.HasPrefix(Template(), "{{.Name}} version v1.2.3") {
		t.Errorf("Template() = %q", Template())
	}
	if UserAgent() != "orbital/v1.2.3" {
		t.Errorf("UserAgent() = %q", UserAgent())
	}
	if info := Get(); info.Version != "v1.2.3" || info.Go == "" {
		t.Errorf("Get() = %+v", info)
	}
}

package analysis

import (
	"strings"
	"testing"
)

func TestBuildRequest_ContainsSchemaKeys(t *testing.T) {
	t.Parallel()

	req := BuildRequest("lustig", "etwas lustig zu machen", "de", "en")

	for _, key := range []string{"contextualExplanation", "examples", "explanations", "translation"} {
		if !strings.Contains(req.User, key) {
			t.Errorf("prompt should enumerate key %q", key)
		}
	}
}

func TestBuildRequest_ResolvesLanguageNames(t *testing.T) {
	t.Parallel()

	req := BuildRequest("lustig", "etwas lustig zu machen", "de", "en")

	if !strings.Contains(req.User, "German") {
		t.Error("prompt should contain resolved learning language name")
	}
	if !strings.Contains(req.User, "English") {
		t.Error("prompt should contain resolved base language name")
	}
	if !strings.Contains(req.User, `Text: "lustig"`) {
		t.Error("prompt should embed the text")
	}
	if !strings.Contains(req.User, `Context: "etwas lustig zu machen"`) {
		t.Error("prompt should embed the context")
	}
}

func TestBuildRequest_UnknownCodePassesThrough(t *testing.T) {
	t.Parallel()

	req := BuildRequest("word", "some context", "xx", "yy")

	if !strings.Contains(req.User, "xx") {
		t.Error("unknown learning code should pass through verbatim")
	}
}

func TestBuildRequest_SystemMandatesJSON(t *testing.T) {
	t.Parallel()

	req := BuildRequest("a", "b", "de", "en")
	if !strings.Contains(req.System, "valid JSON") {
		t.Errorf("system prompt should mandate JSON output: %q", req.System)
	}
}

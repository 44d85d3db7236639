package handler

import (
	"strings"
	"testing"
)

func TestRenderInstructionsHeadingsAndList(t *testing.T) {
	src := "= 手順\nまず窓を開ける\n== 注意\n* 洗剤を使わない\n* 水だけで拭く\n"
	got := string(RenderInstructions(src))

	for _, want := range []string{
		"<h3>手順</h3>",
		"<p>まず窓を開ける</p>",
		"<h4>注意</h4>",
		"<li>洗剤を使わない</li>",
		"<li>水だけで拭く</li>",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	if strings.Count(got, "<ul>") != 1 {
		t.Errorf("expected one <ul>, got:\n%s", got)
	}
}

func TestRenderInstructionsImage(t *testing.T) {
	got := string(RenderInstructions("image::/uploads/abc.png[]"))
	if !strings.Contains(got, `<img src="/uploads/abc.png" alt="">`) {
		t.Errorf("image not rendered: %s", got)
	}
}

func TestRenderInstructionsEscapesHTML(t *testing.T) {
	got := string(RenderInstructions("<script>alert(1)</script>"))
	if strings.Contains(got, "<script>") {
		t.Errorf("unescaped markup in output: %s", got)
	}
	if !strings.Contains(got, "&lt;script&gt;") {
		t.Errorf("expected escaped text, got: %s", got)
	}
}

func TestRenderInstructionsBlankLineEndsList(t *testing.T) {
	src := "* one\n\n* two\n"
	got := string(RenderInstructions(src))
	if strings.Count(got, "<ul>") != 2 {
		t.Errorf("expected two lists, got:\n%s", got)
	}
}

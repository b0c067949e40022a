package email

import (
	"context"
	"strings"
	"testing"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-lettergen/pkg/i18n"
	"github.com/goliatone/go-lettergen/pkg/letter"
	"github.com/goliatone/go-lettergen/pkg/render"
	"github.com/goliatone/go-lettergen/pkg/request"
)

func sampleLetter() letter.Letter {
	return letter.Letter{
		Subject:   "Access request according to Art. 15 GDPR",
		Content:   "Dear Sir or Madam:\n\nPlease disclose my data.",
		Signature: request.Signature{Kind: "text", Value: "Jane Doe"},
		Language:  "en",
		Reference: "20250102-TEST1",
	}
}

func TestRenderFragment(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	out, err := r.Render(context.Background(), sampleLetter(), render.Options{})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	html := string(out)
	if !strings.Contains(html, `<pre style="white-space: pre-line;">`) {
		t.Fatalf("fragment lacks pre wrapper:\n%s", html)
	}
	if !strings.Contains(html, "Please disclose my data.") {
		t.Fatalf("fragment lacks letter content:\n%s", html)
	}
	if !strings.Contains(html, `lang="en"`) {
		t.Fatalf("fragment lacks language attribute:\n%s", html)
	}
}

func TestRenderSanitizesContent(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	doc := sampleLetter()
	doc.Content = `hello <script>alert("x")</script> world`

	out, err := r.Render(context.Background(), doc, render.Options{})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if strings.Contains(string(out), "<script>") {
		t.Fatalf("script tag survived sanitation:\n%s", out)
	}
}

func TestRenderThemeCSSVars(t *testing.T) {
	r, err := New(WithTheme(&theme.RendererConfig{
		CSSVars: map[string]string{"accent": "#336699"},
	}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	out, err := r.Render(context.Background(), sampleLetter(), render.Options{})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(string(out), "--accent: #336699;") {
		t.Fatalf("theme CSS vars missing:\n%s", out)
	}
}

func TestMailtoLink(t *testing.T) {
	cat, err := i18n.New()
	if err != nil {
		t.Fatalf("i18n.New: %v", err)
	}

	link := MailtoLink(sampleLetter(), "privacy@acme.example", cat)

	if !strings.HasPrefix(link, "mailto:privacy@acme.example?subject=") {
		t.Fatalf("link = %q", link)
	}
	if !strings.Contains(link, "20250102-TEST1") {
		t.Fatalf("link lacks reference: %q", link)
	}
	if strings.Contains(link, "+") {
		t.Fatalf("mailto links must not encode spaces as '+': %q", link)
	}
}
